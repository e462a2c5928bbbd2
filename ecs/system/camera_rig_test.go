package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/internal/mgltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRigWorld(t *testing.T, camPos, rigPos mgl64.Vec3, speed float64) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	cam := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{Position: camPos, Rotation: mgl64.QuatIdent()}))
	require.NoError(t, ecs.Add(w, cam, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}))

	rig := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, rig, component.TransformComponent.Kind(), &component.Transform{Position: rigPos, Rotation: mgl64.QuatIdent()}))
	require.NoError(t, ecs.Add(w, rig, component.CameraRigComponent.Kind(), &component.CameraRig{Speed: speed}))
	return w, cam, rig
}

func TestCameraRigOffsetScenario(t *testing.T) {
	w, cam, rig := newRigWorld(t, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, component.DefaultRigSpeed)
	sched := ecs.NewScheduler(NewCameraRigSystem())

	sched.Update(w, dt)
	r, _ := ecs.Get(w, rig, component.CameraRigComponent.Kind())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, r.Offset)

	camT, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	camT.Position = mgl64.Vec3{5, 0, 0}
	sched.Update(w, dt)

	rigT, _ := ecs.Get(w, rig, component.TransformComponent.Kind())
	mgltest.AssertVec(t, mgl64.Vec3{5, 1, 0}, rigT.Position, 1e-12)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, r.Offset)
}

func TestCameraRigTracksChildCamera(t *testing.T) {
	s := newScene(t, sceneOpts{variant: component.VariantBasic, start: mgl64.Vec3{2, 0, 2}})
	lightT := s.transform(t, s.light)
	lightT.Position = mgl64.Vec3{2.35, 1.35, 2.25}
	require.NoError(t, ecs.Add(s.w, s.light, component.CameraRigComponent.Kind(), &component.CameraRig{Speed: 3}))
	s.rigs.Init(s.w)

	for i := 0; i < 20; i++ {
		s.step(dt, component.Input{MoveZ: 1})
		camPos, _, ok := ecs.WorldPose(s.w, s.camera)
		require.True(t, ok)
		mgltest.AssertVec(t, camPos.Add(mgl64.Vec3{0.35, -0.25, 0.25}), lightT.Position, 1e-9, "frame %d", i)
	}
}

func TestCameraRigInitCapturesAuthoredOffset(t *testing.T) {
	w, cam, rig := newRigWorld(t, mgl64.Vec3{0, 1.6, 0}, mgl64.Vec3{0.35, 1.35, 0.25}, component.DefaultRigSpeed)
	rigs := NewCameraRigSystem()
	rigs.Init(w)

	r, _ := ecs.Get(w, rig, component.CameraRigComponent.Kind())
	require.True(t, r.Initialized)
	assert.Equal(t, uint64(cam), r.Camera)
	mgltest.AssertVec(t, mgl64.Vec3{0.35, -0.25, 0.25}, r.Offset, 1e-12)

	// The camera moves before the rig system first runs; the offset must not
	// absorb that motion.
	camT, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	camT.Position = mgl64.Vec3{0, 1.6, 0.1}
	ecs.NewScheduler(rigs).Update(w, dt)

	rigT, _ := ecs.Get(w, rig, component.TransformComponent.Kind())
	mgltest.AssertVec(t, mgl64.Vec3{0.35, 1.35, 0.35}, rigT.Position, 1e-12)
	mgltest.AssertVec(t, mgl64.Vec3{0.35, -0.25, 0.25}, r.Offset, 1e-12)
}

func TestCameraRigInitWithoutCameraFaultsOnce(t *testing.T) {
	w := ecs.NewWorld()
	rig := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, rig, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, rig, component.CameraRigComponent.Kind(), &component.CameraRig{Speed: 3}))

	rigs := NewCameraRigSystem()
	rigs.Init(w)
	ecs.NewScheduler(rigs).Update(w, dt)

	r, _ := ecs.Get(w, rig, component.CameraRigComponent.Kind())
	assert.True(t, r.Faulted)
	assert.Len(t, w.Events().Drain(), 1)
}

func TestCameraRigRotationEases(t *testing.T) {
	w, cam, rig := newRigWorld(t, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, 3)
	target := common.Yaw(mgl64.QuatIdent(), 90)
	camT, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
	camT.Rotation = target

	sched := ecs.NewScheduler(NewCameraRigSystem())
	sched.Update(w, 0.1)

	rigT, _ := ecs.Get(w, rig, component.TransformComponent.Kind())
	assert.InDelta(t, 27, common.YawDegrees(rigT.Rotation), 1e-6)

	// speed*dt above one snaps.
	sched.Update(w, 1)
	mgltest.AssertQuat(t, target, rigT.Rotation, 1e-9)
}

func TestCameraRigWithoutCameraFaults(t *testing.T) {
	w := ecs.NewWorld()
	rig := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, rig, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{1, 2, 3}}))
	require.NoError(t, ecs.Add(w, rig, component.CameraRigComponent.Kind(), &component.CameraRig{Speed: 3}))

	sched := ecs.NewScheduler(NewCameraRigSystem())
	sched.Update(w, dt)
	sched.Update(w, dt)

	r, _ := ecs.Get(w, rig, component.CameraRigComponent.Kind())
	assert.True(t, r.Faulted)
	assert.Len(t, w.Events().Drain(), 1)

	tr, _ := ecs.Get(w, rig, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, tr.Position)
}
