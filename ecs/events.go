package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventCrouchToggled     = "crouch_toggled"
	EventFlashlightToggled = "flashlight_toggled"
	EventEntityFaulted     = "entity_faulted"
)

// CrouchEvent is emitted when a locomotion entity changes posture.
type CrouchEvent struct {
	Entity       Entity
	Crouching    bool
	TargetHeight float64
}

// FlashlightEvent is emitted when a light is toggled.
type FlashlightEvent struct {
	Entity  Entity
	Light   Entity
	Enabled bool
}

// FaultEvent is emitted once when an entity stops updating because a
// required collaborator is missing.
type FaultEvent struct {
	Entity Entity
	System string
	Err    error
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports how many events are pending.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
