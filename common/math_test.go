package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/nightwalk/internal/mgltest"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(3, -1, 1))
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
	assert.Equal(t, 0.0, Clamp01(-2))
	assert.Equal(t, 1.0, Clamp01(7))
}

func TestYawDegrees(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, -45, 170} {
		assert.InDelta(t, deg, YawDegrees(Yaw(mgl64.QuatIdent(), deg)), 1e-9)
	}
	// Pitch does not change heading.
	q := Yaw(mgl64.QuatIdent(), 60).Mul(PitchRotation(30))
	assert.InDelta(t, 60, YawDegrees(q), 1e-9)
}

func TestSlerpShortestArcAndClamp(t *testing.T) {
	a := mgl64.QuatIdent()
	b := Yaw(mgl64.QuatIdent(), 90)

	mgltest.AssertQuat(t, b, Slerp(a, b, 2), 1e-9)
	mgltest.AssertQuat(t, a, Slerp(a, b, -1), 1e-9)

	// b and -b are the same rotation; the result must not take the long way.
	mid := Slerp(a, b.Scale(-1), 0.5)
	assert.InDelta(t, 45, YawDegrees(mid), 1e-6)
}
