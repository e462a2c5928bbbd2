package system

import (
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/rs/zerolog/log"
)

// CameraRigSystem pins rigs to the main camera at the offset they started
// with and eases their rotation toward the camera's.
type CameraRigSystem struct{}

func NewCameraRigSystem() *CameraRigSystem {
	return &CameraRigSystem{}
}

// Init records the camera offset of every rig in w from the current poses.
// Call it once the scene is assembled and before the first Update so the
// offset reflects the authored layout rather than the first simulated frame.
// Rigs added later are captured lazily on their first Update.
func (s *CameraRigSystem) Init(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig, _ *component.Transform) {
		if !rig.Initialized && !rig.Faulted {
			s.capture(w, e, rig)
		}
	})
}

func (s *CameraRigSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig, _ *component.Transform) {
		if rig.Faulted {
			return
		}
		if !rig.Initialized && !s.capture(w, e, rig) {
			return
		}

		camPos, camRot, ok := ecs.WorldPose(w, ecs.Entity(rig.Camera))
		if !ok {
			fault(w, e, "camera_rig", &rig.Faulted, ErrMissingCamera)
			return
		}
		_, rigRot, _ := ecs.WorldPose(w, e)
		ecs.SetWorldPose(w, e, camPos.Add(rig.Offset), common.Slerp(rigRot, camRot, rig.Speed*dt))
	})
}

func (s *CameraRigSystem) capture(w *ecs.World, e ecs.Entity, rig *component.CameraRig) bool {
	cam, ok := ecs.First(w, component.MainCameraTagComponent.Kind())
	if !ok {
		fault(w, e, "camera_rig", &rig.Faulted, ErrMissingCamera)
		return false
	}
	camPos, _, ok := ecs.WorldPose(w, cam)
	if !ok {
		fault(w, e, "camera_rig", &rig.Faulted, ErrMissingCamera)
		return false
	}
	rigPos, _, _ := ecs.WorldPose(w, e)
	rig.Camera = uint64(cam)
	rig.Offset = rigPos.Sub(camPos)
	rig.Initialized = true
	log.Debug().Stringer("entity", e).Stringer("camera", cam).Msgf("camera_rig: offset %.3f,%.3f,%.3f", rig.Offset.X(), rig.Offset.Y(), rig.Offset.Z())
	return true
}
