package geometry

import (
	"math"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

// Disk represents a filled circle
type Disk struct {
	Center core.Vec2
	Radius float64
}

// NewDisk creates a new disk. The radius must be positive.
func NewDisk(center core.Vec2, radius float64) *Disk {
	core.Invariant(!core.HasNaN(center), "disk center must not be NaN: %v", center)
	core.Invariant(radius > 0, "disk radius must be positive, got %v", radius)
	return &Disk{
		Center: center,
		Radius: radius,
	}
}

// Inside reports whether p is within the radius, boundary included
func (d *Disk) Inside(p core.Vec2) bool {
	return core.Distance(p, d.Center) <= d.Radius
}

// OnBoundary reports whether p lies on the circle
func (d *Disk) OnBoundary(p core.Vec2) bool {
	return math.Abs(core.Distance(p, d.Center)-d.Radius) <= core.BoundaryEpsilon
}

// NormalAt returns the radial direction at p
func (d *Disk) NormalAt(p core.Vec2) core.Vec2 {
	return core.Normalize(p.Sub(d.Center))
}

// HitAny reports whether the ray can reach the disk
func (d *Disk) HitAny(ray core.Ray) bool {
	if d.Inside(ray.Origin) {
		return true
	}

	toCenter := d.Center.Sub(ray.Origin)
	direction := core.Normalize(ray.Direction)
	projection := toCenter.Dot(direction)
	if projection < 0 {
		return false
	}

	// Perpendicular distance from the center to the ray's line
	closest := ray.Origin.Add(direction.Mul(projection))
	return core.Distance(closest, d.Center) <= d.Radius
}

// Hit tests if a ray intersects with the circle
func (d *Disk) Hit(ray core.Ray, tMax float64) (*material.SurfaceInteraction, bool) {
	// Vector from circle center to ray origin
	oc := ray.Origin.Sub(d.Center)

	// Quadratic equation coefficients: at² + 2ht + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - d.Radius*d.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	root := (-halfB - sqrtD) / a
	if root < 0 || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root < 0 || root >= tMax {
			return nil, false
		}
	}

	return boundaryRecord(ray, root, d.NormalAt), true
}
