package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// PitchRotation is an X-axis-only rotation of deg degrees.
func PitchRotation(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Right)
}

// Yaw rotates q about its own up axis by deg degrees.
func Yaw(q mgl64.Quat, deg float64) mgl64.Quat {
	return q.Mul(mgl64.QuatRotate(mgl64.DegToRad(deg), Up)).Normalize()
}

// Slerp blends a toward b along the shorter arc; t is clamped to [0,1].
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	t = Clamp01(t)
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t)
}

// YawDegrees is the heading of q projected onto the ground plane, measured
// from +Z toward +X.
func YawDegrees(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	return mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
}
