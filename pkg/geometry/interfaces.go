package geometry

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

// Surface interface for closed 2D regions that can be hit by rays
type Surface interface {
	// Inside reports whether p lies in the region, boundary included
	Inside(p core.Vec2) bool

	// OnBoundary reports whether p lies on the region's edge within core.BoundaryEpsilon
	OnBoundary(p core.Vec2) bool

	// NormalAt returns the outward unit normal at a boundary point
	NormalAt(p core.Vec2) core.Vec2

	// Hit returns the first boundary crossing with 0 < t < tMax. A ray that
	// starts inside and never leaves within tMax yields an enclosing record.
	Hit(ray core.Ray, tMax float64) (*material.SurfaceInteraction, bool)

	// HitAny reports whether the ray can reach the region at all
	HitAny(ray core.Ray) bool
}

// enclosingRecord is the zero-distance answer for rays that stay inside a region
func enclosingRecord(ray core.Ray) *material.SurfaceInteraction {
	return &material.SurfaceInteraction{
		T:         0,
		Point:     ray.Origin,
		Wo:        core.Negate(ray.Direction),
		Enclosing: true,
	}
}

// boundaryRecord builds the hit record for a crossing at parameter t
func boundaryRecord(ray core.Ray, t float64, normalAt func(core.Vec2) core.Vec2) *material.SurfaceInteraction {
	hit := &material.SurfaceInteraction{
		T:     t,
		Point: ray.At(t),
	}
	hit.SetFaceNormal(ray, normalAt(hit.Point))
	return hit
}
