package component

import "github.com/go-gl/mathgl/mgl64"

// CameraRig keeps an entity at a fixed offset from the main camera and eases
// its rotation toward the camera's.
type CameraRig struct {
	Speed float64

	Offset      mgl64.Vec3
	Camera      uint64
	Initialized bool
	Faulted     bool
}

const DefaultRigSpeed = 3.0

var CameraRigComponent = NewComponent[CameraRig]()
