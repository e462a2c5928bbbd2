package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/rs/zerolog/log"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

const (
	// characterGroup keeps point queries from hitting character footprints.
	characterGroup uint = 1

	resolveIterations = 4
	skinWidth         = 1e-4

	// A sub-step never exceeds half the radius, so the footprint center
	// cannot cross a wall edge between two resolves.
	maxSubSteps = 1024
)

// PhysicsWorld owns the Chipmunk space. The space's plane is the world XZ
// plane; height is handled against a flat floor.
type PhysicsWorld struct {
	space *cp.Space
	floor float64

	shapeToEntity map[*cp.Shape]Entity
	solids        []*cp.Shape
}

// NewPhysicsWorld creates an empty physics world with its floor at floorY.
func NewPhysicsWorld(floorY float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20

	return &PhysicsWorld{
		space:         space,
		floor:         floorY,
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

func (pw *PhysicsWorld) Floor() float64 {
	if pw == nil {
		return 0
	}
	return pw.floor
}

// AddSolidBox adds a static axis-aligned wall covering [minX,maxX]x[minZ,maxZ].
func (pw *PhysicsWorld) AddSolidBox(minX, minZ, maxX, maxZ float64) *cp.Shape {
	if pw == nil || pw.space == nil {
		return nil
	}
	bb := cp.BB{L: minX, B: minZ, R: maxX, T: maxZ}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFriction(0)
	pw.space.AddShape(shape)
	pw.solids = append(pw.solids, shape)
	return shape
}

// Solids returns the bounding boxes of every static wall.
func (pw *PhysicsWorld) Solids() []cp.BB {
	if pw == nil {
		return nil
	}
	out := make([]cp.BB, 0, len(pw.solids))
	for _, s := range pw.solids {
		out = append(out, s.BB())
	}
	return out
}

// EnsureCharacter creates the kinematic footprint for a character body if it
// does not have one yet.
func (pw *PhysicsWorld) EnsureCharacter(e Entity, t *component.Transform, body *component.CharacterBody) {
	if pw == nil || pw.space == nil || t == nil || body == nil || body.Body != nil {
		return
	}
	cpBody := cp.NewKinematicBody()
	cpBody.SetPosition(cp.Vector{X: t.Position.X(), Y: t.Position.Z()})
	shape := cp.NewCircle(cpBody, body.Radius, cp.Vector{})
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(characterFilter())

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e

	body.Body = cpBody
	body.Shape = shape
	log.Debug().Msgf("PhysicsWorld: EnsureCharacter entity=%s radius=%.2f", e, body.Radius)
}

// RemoveCharacter detaches a character footprint from the space.
func (pw *PhysicsWorld) RemoveCharacter(body *component.CharacterBody) {
	if pw == nil || pw.space == nil || body == nil || body.Body == nil {
		return
	}
	if body.Shape != nil {
		delete(pw.shapeToEntity, body.Shape)
		pw.space.RemoveShape(body.Shape)
	}
	pw.space.RemoveBody(body.Body)
	body.Body = nil
	body.Shape = nil
}

// Move displaces a root transform by delta with collision resolution. The
// horizontal part is walked in sub-steps of at most half the radius and
// pushed out of static walls after each one, so a large delta cannot carry
// the footprint through a wall. The vertical part stops at the floor, which
// sets Grounded.
func (pw *PhysicsWorld) Move(t *component.Transform, body *component.CharacterBody, delta mgl64.Vec3) {
	if t == nil || body == nil {
		return
	}
	p := pw.sweep(cp.Vector{X: t.Position.X(), Y: t.Position.Z()}, cp.Vector{X: delta.X(), Y: delta.Z()}, body.Radius)

	y := t.Position.Y() + delta.Y()
	body.Grounded = false
	if floor := pw.Floor(); y <= floor {
		y = floor
		body.Grounded = delta.Y() <= 0
	}

	t.Position = mgl64.Vec3{p.X, y, p.Y}
	if body.Body != nil {
		body.Body.SetPosition(p)
	}
}

func characterFilter() cp.ShapeFilter {
	f := cp.SHAPE_FILTER_ALL
	f.Group = characterGroup
	return f
}

func (pw *PhysicsWorld) sweep(from, delta cp.Vector, radius float64) cp.Vector {
	if radius <= 0 {
		return from.Add(delta)
	}
	n := int(math.Ceil(delta.Length() / (radius * 0.5)))
	if n < 1 {
		n = 1
	}
	if n > maxSubSteps {
		n = maxSubSteps
	}
	step := delta.Mult(1 / float64(n))
	p := from
	for i := 0; i < n; i++ {
		p = pw.resolve(p.Add(step), radius)
	}
	return p
}

func (pw *PhysicsWorld) resolve(p cp.Vector, radius float64) cp.Vector {
	if pw == nil || pw.space == nil || radius <= 0 {
		return p
	}
	filter := characterFilter()
	for i := 0; i < resolveIterations; i++ {
		info := pw.space.PointQueryNearest(p, radius, filter)
		if info == nil || info.Shape == nil || info.Distance >= radius {
			break
		}
		p = p.Add(info.Gradient.Mult(radius - info.Distance + skinWidth))
	}
	return p
}
