package system

import (
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/rs/zerolog/log"
)

// InputSource produces the held state for one frame. Rising edges are left
// to the InputSystem.
type InputSource interface {
	Poll(frame uint64, dt float64) (component.Input, error)
}

// InputSourceFunc adapts a function to InputSource.
type InputSourceFunc func(frame uint64, dt float64) (component.Input, error)

func (f InputSourceFunc) Poll(frame uint64, dt float64) (component.Input, error) {
	return f(frame, dt)
}

type InputSystem struct {
	source InputSource

	prevCrouch     bool
	prevFlashlight bool
	failed         bool
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

// SetSource swaps the source. Held state carries over so a key held across
// the swap does not produce a second press.
func (i *InputSystem) SetSource(source InputSource) {
	i.source = source
	i.failed = false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var in component.Input
	if i.source != nil {
		polled, err := i.source.Poll(w.Frame(), w.Delta())
		switch {
		case err != nil && !i.failed:
			log.Error().Err(err).Uint64("frame", w.Frame()).Msg("input: poll failed, sending neutral input")
			i.failed = true
		case err == nil:
			in = polled
			i.failed = false
		}
	}

	in.CrouchPressed = in.CrouchHeld && !i.prevCrouch
	in.FlashlightPressed = in.FlashlightHeld && !i.prevFlashlight
	i.prevCrouch = in.CrouchHeld
	i.prevFlashlight = in.FlashlightHeld

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = in
	})
}
