package component

import "github.com/jakecoffman/cp"

// CharacterBody is a capsule-shaped body. Height is mutable to express
// posture; Grounded reflects the last move.
type CharacterBody struct {
	Height   float64
	Radius   float64
	Grounded bool

	Body  *cp.Body
	Shape *cp.Shape
}

var CharacterBodyComponent = NewComponent[CharacterBody]()
