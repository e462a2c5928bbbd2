package entity

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":            addName,
	"player_tag":      addPlayerTag,
	"main_camera_tag": addMainCameraTag,
	"transform":       addTransform,
	"character_body":  addCharacterBody,
	"input":           addInput,
	"locomotion":      addLocomotion,
	"camera_rig":      addCameraRig,
	"light":           addLight,
}

// componentBuildOrder runs transform before character_body so the physics
// footprint starts at the prefab position.
var componentBuildOrder = []string{
	"name",
	"player_tag",
	"main_camera_tag",
	"transform",
	"character_body",
	"input",
	"locomotion",
	"camera_rig",
	"light",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// FindByName returns the live entity whose Name matches.
func FindByName(w *ecs.World, name string) (ecs.Entity, bool) {
	if name == "" {
		return 0, false
	}
	var found ecs.Entity
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if !found.Valid() && n.Value == name {
			found = e
		}
	})
	return found, found.Valid()
}

// SetEntityTransform moves e to a world-space position and heading and
// keeps any physics footprint in sync.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	if !ecs.SetWorldPose(w, e, pos, common.Yaw(mgl64.QuatIdent(), yaw)) {
		return fmt.Errorf("set transform: entity %s has no transform", e)
	}
	if body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cpVector(t.Position))
	}
	return nil
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NameComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	if spec.Value == "" {
		return fmt.Errorf("name must not be empty")
	}
	if other, ok := FindByName(w, spec.Value); ok && other != e {
		return fmt.Errorf("name %q already used by entity %s", spec.Value, other)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addMainCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}

	rot := common.Yaw(mgl64.QuatIdent(), spec.Yaw).Mul(common.PitchRotation(spec.Pitch)).Normalize()
	t := &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: rot,
	}
	if spec.Parent != "" {
		parent, ok := FindByName(w, spec.Parent)
		if !ok {
			return fmt.Errorf("transform parent %q not found", spec.Parent)
		}
		t.Parent = uint64(parent)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCharacterBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character_body spec: %w", err)
	}
	if spec.Height <= 0 {
		spec.Height = 2
	}
	if spec.Radius <= 0 {
		spec.Radius = 0.5
	}
	body := &component.CharacterBody{Height: spec.Height, Radius: spec.Radius}
	if err := ecs.Add(w, e, component.CharacterBodyComponent.Kind(), body); err != nil {
		return err
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		w.PhysicsWorld().EnsureCharacter(e, t, body)
	}
	return nil
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LocomotionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}
	loco := &component.Locomotion{}
	if err := ApplyLocomotionSpec(loco, spec); err != nil {
		return err
	}
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), loco)
}

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraRigComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera_rig spec: %w", err)
	}
	speed := spec.Speed
	if speed == 0 {
		speed = component.DefaultRigSpeed
	}
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Speed: speed})
}

func addLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LightComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode light spec: %w", err)
	}
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if spec.Color != nil {
		c = spec.Color.NRGBA
	}
	return ecs.Add(w, e, component.LightComponent.Kind(), &component.Light{
		Enabled: spec.Enabled,
		Range:   spec.Range,
		Angle:   spec.Angle,
		Color:   c,
	})
}
