package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/prefabs"
)

// ApplyLocomotionSpec overwrites the tuning half of l from a prefab spec.
// Runtime state (posture, velocity, pitch, tween) is left alone so it can
// be used for hot reload.
func ApplyLocomotionSpec(l *component.Locomotion, spec prefabs.LocomotionComponentSpec) error {
	variant, err := component.ParseVariant(spec.Variant)
	if err != nil {
		return err
	}
	t := component.DefaultTuning(variant)
	if spec.Forward != nil {
		t.Forward = speedSet(*spec.Forward, t.Forward)
	}
	if !variant.SplitAxes() {
		t.Strafe = t.Forward
	} else if spec.Strafe != nil {
		t.Strafe = speedSet(*spec.Strafe, t.Strafe)
	}
	override(&t.CrouchHeight, spec.CrouchHeight)
	override(&t.CrouchDuration, spec.CrouchDuration)
	override(&t.LookSpeed, spec.LookSpeed)
	override(&t.LookXLimit, spec.LookXLimit)
	override(&t.Gravity, spec.Gravity)
	if err := validateTuning(t); err != nil {
		return err
	}

	l.LocomotionTuning = t
	if spec.Camera != "" {
		l.CameraName = spec.Camera
	}
	if spec.Flashlight != "" {
		l.FlashlightName = spec.Flashlight
	}
	return nil
}

func validateTuning(t component.LocomotionTuning) error {
	checks := []struct {
		name string
		v    float64
	}{
		{"forward.walk", t.Forward.Walk},
		{"forward.run", t.Forward.Run},
		{"forward.crouch", t.Forward.Crouch},
		{"strafe.walk", t.Strafe.Walk},
		{"strafe.run", t.Strafe.Run},
		{"strafe.crouch", t.Strafe.Crouch},
		{"crouch_height", t.CrouchHeight},
		{"crouch_duration", t.CrouchDuration},
		{"look_x_limit", t.LookXLimit},
	}
	for _, c := range checks {
		if c.v < 0 {
			return fmt.Errorf("%s must not be negative, got %v", c.name, c.v)
		}
	}
	return nil
}

// TuningSpec is the inverse of ApplyLocomotionSpec. Every field is written
// so the output reloads to the same tuning regardless of preset.
func TuningSpec(l *component.Locomotion) prefabs.LocomotionComponentSpec {
	spec := prefabs.LocomotionComponentSpec{
		Variant:        string(l.Variant),
		Forward:        speedSetSpec(l.Forward),
		CrouchHeight:   ptr(l.CrouchHeight),
		CrouchDuration: ptr(l.CrouchDuration),
		LookSpeed:      ptr(l.LookSpeed),
		LookXLimit:     ptr(l.LookXLimit),
		Gravity:        ptr(l.Gravity),
		Camera:         l.CameraName,
		Flashlight:     l.FlashlightName,
	}
	if l.Variant.SplitAxes() {
		spec.Strafe = speedSetSpec(l.Strafe)
	}
	return spec
}

func speedSet(spec prefabs.SpeedSetSpec, def component.SpeedSet) component.SpeedSet {
	out := def
	override(&out.Walk, spec.Walk)
	override(&out.Run, spec.Run)
	override(&out.Crouch, spec.Crouch)
	return out
}

func speedSetSpec(s component.SpeedSet) *prefabs.SpeedSetSpec {
	return &prefabs.SpeedSetSpec{Walk: ptr(s.Walk), Run: ptr(s.Run), Crouch: ptr(s.Crouch)}
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T {
	return &v
}

func cpVector(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}
