package entity

import (
	"fmt"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

// NewFlashlightFor builds the flashlight rig and places it relative to
// anchor, treating the prefab position as an offset in anchor space.
func NewFlashlightFor(w *ecs.World, anchor ecs.Entity) (ecs.Entity, error) {
	light, err := BuildEntity(w, "flashlight.yaml")
	if err != nil {
		return 0, err
	}
	t, ok := ecs.Get(w, light, component.TransformComponent.Kind())
	if !ok {
		return light, nil
	}
	apos, arot, ok := ecs.WorldPose(w, anchor)
	if !ok {
		return 0, fmt.Errorf("flashlight: anchor %s has no transform", anchor)
	}
	t.Position = apos.Add(arot.Rotate(t.Position))
	t.Rotation = arot.Mul(t.Orientation()).Normalize()
	return light, nil
}

// Heading returns the yaw in degrees of e's world rotation.
func Heading(w *ecs.World, e ecs.Entity) float64 {
	_, rot, ok := ecs.WorldPose(w, e)
	if !ok {
		return 0
	}
	return common.YawDegrees(rot)
}
