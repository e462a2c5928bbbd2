package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/ecs/entity"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingBody   = errors.New("character body missing")
	ErrMissingCamera = errors.New("camera transform missing")
)

// LocomotionSystem runs the first-person controller: movement, camera look,
// crouch toggle and flashlight toggle, in that order, once per frame.
type LocomotionSystem struct {
	cursor CursorLocker
}

func NewLocomotionSystem(cursor CursorLocker) *LocomotionSystem {
	return &LocomotionSystem{cursor: cursor}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, t *component.Transform) {
		if loco.Faulted {
			return
		}
		if !loco.Initialized {
			if err := s.init(w, e, loco); err != nil {
				fault(w, e, "locomotion", &loco.Faulted, err)
				return
			}
		}

		body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
		if !ok {
			fault(w, e, "locomotion", &loco.Faulted, ErrMissingBody)
			return
		}
		cam, ok := ecs.Get(w, ecs.Entity(loco.Camera), component.TransformComponent.Kind())
		if !ok {
			fault(w, e, "locomotion", &loco.Faulted, ErrMissingCamera)
			return
		}

		var in component.Input
		if polled, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			in = *polled
		}

		s.move(w, e, loco, t, body, in, dt)
		look(loco, t, cam, in)
		crouch(w, e, loco, body, in, dt)
		toggleFlashlight(w, e, loco, in)
	})
}

func (s *LocomotionSystem) init(w *ecs.World, e ecs.Entity, loco *component.Locomotion) error {
	body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
	if !ok {
		return ErrMissingBody
	}
	if s.cursor != nil {
		s.cursor.Lock()
	}
	loco.NormalHeight = body.Height

	if loco.Flashlight == 0 && loco.FlashlightName != "" {
		if light, ok := entity.FindByName(w, loco.FlashlightName); ok {
			loco.Flashlight = uint64(light)
		}
	}
	if light, ok := ecs.Get(w, ecs.Entity(loco.Flashlight), component.LightComponent.Kind()); ok {
		light.Enabled = false
	} else {
		log.Warn().Stringer("entity", e).Str("flashlight", loco.FlashlightName).Msg("locomotion: no flashlight light attached, toggle disabled")
	}

	if loco.Camera == 0 && loco.CameraName != "" {
		if cam, ok := entity.FindByName(w, loco.CameraName); ok {
			loco.Camera = uint64(cam)
		}
	}
	if !ecs.Has(w, ecs.Entity(loco.Camera), component.TransformComponent.Kind()) {
		return fmt.Errorf("%w: %q", ErrMissingCamera, loco.CameraName)
	}

	loco.Initialized = true
	log.Debug().Stringer("entity", e).Str("variant", string(loco.Variant)).Float64("normal_height", loco.NormalHeight).Msg("locomotion: initialized")
	return nil
}

func (s *LocomotionSystem) move(w *ecs.World, e ecs.Entity, loco *component.Locomotion, t *component.Transform, body *component.CharacterBody, in component.Input, dt float64) {
	_, rot, _ := ecs.WorldPose(w, e)
	forward := rot.Rotate(common.Forward)
	right := rot.Rotate(common.Right)

	forwardSpeed, strafeSpeed := loco.Speeds(in.Sprint)
	curZ := forwardSpeed * in.MoveZ
	curX := strafeSpeed * in.MoveX

	if body.Grounded {
		loco.VerticalVelocity = -loco.Gravity * dt
	} else {
		loco.VerticalVelocity -= loco.Gravity * dt
	}

	delta := forward.Mul(curZ).Add(right.Mul(curX))
	delta = mgl64.Vec3{delta.X(), loco.VerticalVelocity, delta.Z()}
	w.PhysicsWorld().Move(t, body, delta.Mul(dt))
}

func look(loco *component.Locomotion, t *component.Transform, cam *component.Transform, in component.Input) {
	loco.RotationX = common.Clamp(loco.RotationX-in.LookY*loco.LookSpeed, -loco.LookXLimit, loco.LookXLimit)
	cam.Rotation = common.PitchRotation(loco.RotationX)
	t.Rotation = common.Yaw(t.Orientation(), in.LookX*loco.LookSpeed)
}

func crouch(w *ecs.World, e ecs.Entity, loco *component.Locomotion, body *component.CharacterBody, in component.Input, dt float64) {
	if in.CrouchPressed {
		loco.IsCrouching = !loco.IsCrouching
		target := loco.TargetHeight()
		if loco.Variant.SmoothCrouch() {
			loco.Crouch.Start(body.Height, target, loco.CrouchDuration)
		} else {
			body.Height = target
		}
		w.Events().Push(ecs.Event{Type: ecs.EventCrouchToggled, Data: ecs.CrouchEvent{
			Entity:       e,
			Crouching:    loco.IsCrouching,
			TargetHeight: target,
		}})
	}
	if loco.Crouch.Active {
		body.Height = loco.Crouch.Step(dt)
	}
}

func toggleFlashlight(w *ecs.World, e ecs.Entity, loco *component.Locomotion, in component.Input) {
	if !in.FlashlightPressed {
		return
	}
	light, ok := ecs.Get(w, ecs.Entity(loco.Flashlight), component.LightComponent.Kind())
	if !ok {
		return
	}
	light.Enabled = !light.Enabled
	w.Events().Push(ecs.Event{Type: ecs.EventFlashlightToggled, Data: ecs.FlashlightEvent{
		Entity:  e,
		Light:   ecs.Entity(loco.Flashlight),
		Enabled: light.Enabled,
	}})
}

// fault stops an entity's updates for one system and reports it once.
func fault(w *ecs.World, e ecs.Entity, system string, flag *bool, err error) {
	*flag = true
	log.Error().Err(err).Stringer("entity", e).Str("system", system).Msg("entity faulted, updates stopped")
	w.Events().Push(ecs.Event{Type: ecs.EventEntityFaulted, Data: ecs.FaultEvent{Entity: e, System: system, Err: err}})
}
