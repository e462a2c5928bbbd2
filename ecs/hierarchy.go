package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/ecs/component"
)

// maxHierarchyDepth bounds parent walks so a cycle cannot hang a frame.
const maxHierarchyDepth = 16

// WorldPose composes e's transform with every ancestor's and returns the
// world position and rotation. ok is false when e has no transform.
func WorldPose(w *World, e Entity) (pos mgl64.Vec3, rot mgl64.Quat, ok bool) {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	pos, rot = t.Position, t.Orientation()
	parent := Entity(t.Parent)
	for depth := 0; parent.Valid() && depth < maxHierarchyDepth; depth++ {
		pt, ok := Get(w, parent, component.TransformComponent.Kind())
		if !ok {
			break
		}
		prot := pt.Orientation()
		pos = pt.Position.Add(prot.Rotate(pos))
		rot = prot.Mul(rot)
		parent = Entity(pt.Parent)
	}
	return pos, rot.Normalize(), true
}

// SetWorldPose writes a world-space pose into e's local transform, undoing
// the parent chain.
func SetWorldPose(w *World, e Entity, pos mgl64.Vec3, rot mgl64.Quat) bool {
	t, ok := Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	parent := Entity(t.Parent)
	if !parent.Valid() {
		t.Position, t.Rotation = pos, rot
		return true
	}
	ppos, prot, ok := WorldPose(w, parent)
	if !ok {
		t.Position, t.Rotation = pos, rot
		return true
	}
	inv := prot.Inverse()
	t.Position = inv.Rotate(pos.Sub(ppos))
	t.Rotation = inv.Mul(rot).Normalize()
	return true
}

// Children returns the entities whose transform names e as parent.
func Children(w *World, e Entity) []Entity {
	var out []Entity
	ForEach(w, component.TransformComponent.Kind(), func(child Entity, t *component.Transform) {
		if Entity(t.Parent) == e {
			out = append(out, child)
		}
	})
	return out
}
