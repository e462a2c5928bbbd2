package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a local pose. Parent is the owning entity (ecs.Entity is
// uint64); zero means the pose is already in world space.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Parent   uint64
}

// Orientation returns Rotation, treating the zero quaternion as identity so
// a literal Transform{} is usable.
func (t *Transform) Orientation() mgl64.Quat {
	if t == nil || (t.Rotation.W == 0 && t.Rotation.V == (mgl64.Vec3{})) {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

var TransformComponent = NewComponent[Transform]()
