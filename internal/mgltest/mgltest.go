// Package mgltest holds tolerance assertions for mathgl vectors and
// quaternions. mgl64's ApproxEqualThreshold squares the threshold whenever
// either side of a component is zero, which makes it useless for poses that
// sit on an axis.
package mgltest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// Delta is the default per-component tolerance.
const Delta = 1e-9

// AssertVec checks every component of got against want within delta.
func AssertVec(t assert.TestingT, want, got mgl64.Vec3, delta float64, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ok := true
	for i := range want {
		if !assert.InDelta(t, want[i], got[i], delta, axisMessage(i, want, got, msgAndArgs)) {
			ok = false
		}
	}
	return ok
}

// AssertQuat checks that got and want describe the same rotation within
// delta. q and -q are the same rotation, so the sign of got is aligned with
// want before comparing.
func AssertQuat(t assert.TestingT, want, got mgl64.Quat, delta float64, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if want.Dot(got) < 0 {
		got = got.Scale(-1)
	}
	w := mgl64.Vec4{want.V[0], want.V[1], want.V[2], want.W}
	g := mgl64.Vec4{got.V[0], got.V[1], got.V[2], got.W}
	ok := true
	for i := range w {
		if !assert.InDelta(t, w[i], g[i], delta, axisMessage(i, want, got, msgAndArgs)) {
			ok = false
		}
	}
	return ok
}

func axisMessage(i int, want, got interface{}, msgAndArgs []interface{}) string {
	msg := fmt.Sprintf("component %d: want %v got %v", i, want, got)
	if len(msgAndArgs) == 0 {
		return msg
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...) + ": " + msg
	}
	return msg
}
