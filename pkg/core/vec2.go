package core

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Vec2 represents a 2D point or direction
type Vec2 = vec.Vec2

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Normalize returns a unit vector in the same direction.
// Normalizing a zero-length or non-finite vector is a programming error.
func Normalize(v Vec2) Vec2 {
	length := v.Length()
	invariant(length > 0 && !math.IsInf(length, 0) && !math.IsNaN(length),
		"cannot normalize vector %v", v)
	return v.Mul(1 / length)
}

// Negate returns the vector pointing the other way
func Negate(v Vec2) Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Distance returns the euclidean distance between two points
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Length()
}

// Rotate returns v rotated counter-clockwise by theta radians
func Rotate(v Vec2, theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// DirectionFromAngle returns the unit direction at angle theta from the +X axis
func DirectionFromAngle(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{X: cos, Y: sin}
}

// HasNaN reports whether either component is NaN
func HasNaN(v Vec2) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}
