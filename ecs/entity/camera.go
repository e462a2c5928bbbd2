package entity

import (
	"github.com/milk9111/nightwalk/ecs"
)

// NewCamera builds the first-person camera. The player must exist first so
// the transform parent resolves.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera.yaml")
}
