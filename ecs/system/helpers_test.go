package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/stretchr/testify/require"
)

type queueSource struct {
	frames []component.Input
	next   int
}

func (q *queueSource) Poll(uint64, float64) (component.Input, error) {
	if q.next >= len(q.frames) {
		return component.Input{}, nil
	}
	in := q.frames[q.next]
	q.next++
	return in, nil
}

func (q *queueSource) push(in ...component.Input) {
	q.frames = append(q.frames, in...)
}

type scene struct {
	w      *ecs.World
	sched  *ecs.Scheduler
	src    *queueSource
	cursor *RecordingCursor
	rigs   *CameraRigSystem

	player, camera, light ecs.Entity
}

type sceneOpts struct {
	variant    component.LocomotionVariant
	start      mgl64.Vec3
	noBody     bool
	noCamera   bool
	noLight    bool
	lightStart bool
}

func newScene(t *testing.T, opts sceneOpts) *scene {
	t.Helper()

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(0))
	s := &scene{w: w, src: &queueSource{}, cursor: &RecordingCursor{}, rigs: NewCameraRigSystem()}

	s.player = ecs.CreateEntity(w)
	pt := &component.Transform{Position: opts.start, Rotation: mgl64.QuatIdent()}
	require.NoError(t, ecs.Add(w, s.player, component.TransformComponent.Kind(), pt))
	require.NoError(t, ecs.Add(w, s.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, s.player, component.InputComponent.Kind(), &component.Input{}))
	if !opts.noBody {
		body := &component.CharacterBody{Height: 2, Radius: 0.5}
		require.NoError(t, ecs.Add(w, s.player, component.CharacterBodyComponent.Kind(), body))
		w.PhysicsWorld().EnsureCharacter(s.player, pt, body)
	}

	loco := &component.Locomotion{LocomotionTuning: component.DefaultTuning(opts.variant)}
	if !opts.noCamera {
		s.camera = ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, s.camera, component.TransformComponent.Kind(), &component.Transform{
			Position: mgl64.Vec3{0, 1.6, 0},
			Rotation: mgl64.QuatIdent(),
			Parent:   uint64(s.player),
		}))
		require.NoError(t, ecs.Add(w, s.camera, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}))
		loco.Camera = uint64(s.camera)
	}
	if !opts.noLight {
		s.light = ecs.CreateEntity(w)
		require.NoError(t, ecs.Add(w, s.light, component.TransformComponent.Kind(), &component.Transform{Rotation: mgl64.QuatIdent()}))
		require.NoError(t, ecs.Add(w, s.light, component.LightComponent.Kind(), &component.Light{Enabled: opts.lightStart, Range: 10, Angle: 30}))
		loco.Flashlight = uint64(s.light)
	}
	require.NoError(t, ecs.Add(w, s.player, component.LocomotionComponent.Kind(), loco))

	s.sched = ecs.NewScheduler(
		NewInputSystem(s.src),
		NewLocomotionSystem(s.cursor),
		s.rigs,
	)
	return s
}

func (s *scene) step(dt float64, in ...component.Input) {
	s.src.push(in...)
	s.sched.Update(s.w, dt)
}

func (s *scene) loco(t *testing.T) *component.Locomotion {
	t.Helper()
	l, ok := ecs.Get(s.w, s.player, component.LocomotionComponent.Kind())
	require.True(t, ok)
	return l
}

func (s *scene) body(t *testing.T) *component.CharacterBody {
	t.Helper()
	b, ok := ecs.Get(s.w, s.player, component.CharacterBodyComponent.Kind())
	require.True(t, ok)
	return b
}

func (s *scene) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func (s *scene) lightOn(t *testing.T) bool {
	t.Helper()
	l, ok := ecs.Get(s.w, s.light, component.LightComponent.Kind())
	require.True(t, ok)
	return l.Enabled
}
