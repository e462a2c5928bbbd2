package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// MainCameraTag marks the camera the flashlight rig follows.
type MainCameraTag struct{}

var MainCameraTagComponent = NewComponent[MainCameraTag]()

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()
