package solid

import v3 "github.com/deadsy/sdfx/vec/v3"

// Transform is a rigid transform between two local frames: an intrinsic
// XYZ Euler rotation (radians) followed by a translation (mm).
type Transform struct {
	Rotation    v3.Vec
	Translation v3.Vec
}

// Identity is the no-op transform.
var Identity = Transform{}

// Translate returns a pure translation.
func Translate(x, y, z float64) Transform {
	return Transform{Translation: v3.Vec{X: x, Y: y, Z: z}}
}
