package geometry

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// NewBox creates the axis-aligned rectangle [minX, maxX] x [minY, maxY]
// as the intersection of four half-planes
func NewBox(minX, minY, maxX, maxY float64) *Intersection {
	core.Invariant(minX < maxX && minY < maxY,
		"box needs min < max, got x [%v, %v] y [%v, %v]", minX, maxX, minY, maxY)

	horizontal := NewIntersection(
		NewHalfPlane(-1, 0, maxX), // x <= maxX
		NewHalfPlane(1, 0, -minX), // x >= minX
	)
	vertical := NewIntersection(
		NewHalfPlane(0, 1, -minY), // y >= minY
		NewHalfPlane(0, -1, maxY), // y <= maxY
	)
	return NewIntersection(horizontal, vertical)
}
