package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec2
	Direction Vec2
}

// NewRay creates a new ray
func NewRay(origin, direction Vec2) Ray {
	invariant(!HasNaN(origin) && !HasNaN(direction), "ray with NaN component: o=%v d=%v", origin, direction)
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Mul(t))
}
