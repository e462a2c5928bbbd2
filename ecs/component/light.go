package component

import "image/color"

type Light struct {
	Enabled bool
	Range   float64
	Angle   float64
	Color   color.NRGBA
}

var LightComponent = NewComponent[Light]()
