package component

// Input stores per-frame input state for an entity. The Pressed fields are
// rising edges derived by the input system from the Held fields.
type Input struct {
	MoveX float64
	MoveZ float64
	LookX float64
	LookY float64

	Sprint         bool
	CrouchHeld     bool
	FlashlightHeld bool

	CrouchPressed     bool
	FlashlightPressed bool
}

var InputComponent = NewComponent[Input]()
