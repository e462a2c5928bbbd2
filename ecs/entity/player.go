package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

// PlayerPrefab returns the prefab file for a locomotion variant.
func PlayerPrefab(v component.LocomotionVariant) string {
	if v == component.VariantBasic {
		return "player_basic.yaml"
	}
	return "player.yaml"
}

func NewPlayer(w *ecs.World, v component.LocomotionVariant) (ecs.Entity, error) {
	return BuildEntity(w, PlayerPrefab(v))
}

func NewPlayerAt(w *ecs.World, v component.LocomotionVariant, pos mgl64.Vec3, yaw float64) (ecs.Entity, error) {
	player, err := NewPlayer(w, v)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, player, pos, yaw); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return player, nil
}
