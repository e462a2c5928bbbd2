package component

import "fmt"

// LocomotionVariant selects one of the two controller configurations.
type LocomotionVariant string

const (
	// VariantBasic crouches instantly and uses one speed triple for both axes.
	VariantBasic LocomotionVariant = "basic"
	// VariantAxisSplit eases crouch height and has separate strafe speeds.
	VariantAxisSplit LocomotionVariant = "axis_split"
)

func ParseVariant(s string) (LocomotionVariant, error) {
	switch LocomotionVariant(s) {
	case "", VariantAxisSplit:
		return VariantAxisSplit, nil
	case VariantBasic:
		return VariantBasic, nil
	default:
		return "", fmt.Errorf("unknown locomotion variant %q", s)
	}
}

// SmoothCrouch reports whether crouch height is tweened instead of snapped.
func (v LocomotionVariant) SmoothCrouch() bool {
	return v == VariantAxisSplit
}

// SplitAxes reports whether strafing uses its own speed triple.
func (v LocomotionVariant) SplitAxes() bool {
	return v == VariantAxisSplit
}

// SpeedSet is a {walk, run, crouch} triple.
type SpeedSet struct {
	Walk   float64
	Run    float64
	Crouch float64
}

// Select picks run when sprinting is allowed, crouch when crouching, walk
// otherwise. Callers fold the crouch guard into canSprint.
func (s SpeedSet) Select(canSprint, crouching bool) float64 {
	switch {
	case canSprint:
		return s.Run
	case crouching:
		return s.Crouch
	default:
		return s.Walk
	}
}

// LocomotionTuning holds the editor-tunable values. Hot reload swaps it
// without touching runtime state.
type LocomotionTuning struct {
	Variant        LocomotionVariant
	Forward        SpeedSet
	Strafe         SpeedSet
	CrouchHeight   float64
	CrouchDuration float64
	LookSpeed      float64
	LookXLimit     float64
	Gravity        float64
}

// DefaultTuning returns the preset for a variant.
func DefaultTuning(v LocomotionVariant) LocomotionTuning {
	t := LocomotionTuning{
		Variant:        v,
		CrouchHeight:   0.5,
		CrouchDuration: DefaultCrouchDuration,
		LookSpeed:      2,
		LookXLimit:     45,
		Gravity:        9.8,
	}
	if v == VariantBasic {
		t.Forward = SpeedSet{Walk: 5, Run: 8, Crouch: 2.5}
		t.Strafe = t.Forward
		return t
	}
	t.Variant = VariantAxisSplit
	t.Forward = SpeedSet{Walk: 4, Run: 6, Crouch: 2}
	t.Strafe = SpeedSet{Walk: 2, Run: 3, Crouch: 1}
	return t
}

// Locomotion is the first-person controller state for a body entity.
type Locomotion struct {
	LocomotionTuning

	// CameraName and FlashlightName are resolved into Camera and
	// Flashlight on the first update.
	CameraName     string
	FlashlightName string
	Camera         uint64
	Flashlight     uint64

	IsCrouching      bool
	VerticalVelocity float64
	RotationX        float64
	NormalHeight     float64
	Crouch           CrouchTween

	Initialized bool
	Faulted     bool
}

// Speeds returns the forward and strafe speeds for this frame.
func (l *Locomotion) Speeds(sprintHeld bool) (forward, strafe float64) {
	canSprint := sprintHeld && !l.IsCrouching
	forward = l.Forward.Select(canSprint, l.IsCrouching)
	if !l.Variant.SplitAxes() {
		return forward, forward
	}
	return forward, l.Strafe.Select(canSprint, l.IsCrouching)
}

// TargetHeight is the capsule height for the current posture.
func (l *Locomotion) TargetHeight() float64 {
	if l.IsCrouching {
		return l.CrouchHeight
	}
	return l.NormalHeight
}

var LocomotionComponent = NewComponent[Locomotion]()
