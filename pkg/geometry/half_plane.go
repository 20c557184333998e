package geometry

import (
	"math"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

// HalfPlane is the region a*x + b*y + c >= 0
type HalfPlane struct {
	A, B, C float64
	normal  core.Vec2 // normalize(-a, -b), cached
}

// NewHalfPlane creates a half-plane from its line coefficients. (a, b) must not be zero.
func NewHalfPlane(a, b, c float64) *HalfPlane {
	core.Invariant(!math.IsNaN(a) && !math.IsNaN(b) && !math.IsNaN(c),
		"half-plane coefficients must not be NaN: (%v, %v, %v)", a, b, c)
	core.Invariant(a != 0 || b != 0, "half-plane needs a non-zero (a, b)")
	return &HalfPlane{
		A:      a,
		B:      b,
		C:      c,
		normal: core.Normalize(core.NewVec2(-a, -b)),
	}
}

// evaluate returns the signed line residual at p
func (h *HalfPlane) evaluate(p core.Vec2) float64 {
	return h.A*p.X + h.B*p.Y + h.C
}

// Inside reports whether p satisfies a*x + b*y + c >= 0
func (h *HalfPlane) Inside(p core.Vec2) bool {
	return h.evaluate(p) >= 0
}

// OnBoundary reports whether p lies on the line
func (h *HalfPlane) OnBoundary(p core.Vec2) bool {
	return math.Abs(h.evaluate(p)) <= core.BoundaryEpsilon
}

// NormalAt returns the outward normal, which is the same everywhere
func (h *HalfPlane) NormalAt(p core.Vec2) core.Vec2 {
	return h.normal
}

// HitAny reports whether the origin is inside or the ray heads toward the region
func (h *HalfPlane) HitAny(ray core.Ray) bool {
	return h.Inside(ray.Origin) || ray.Direction.Dot(h.normal) < 0
}

// Hit tests the ray against the boundary line
func (h *HalfPlane) Hit(ray core.Ray, tMax float64) (*material.SurfaceInteraction, bool) {
	denom := h.A*ray.Direction.X + h.B*ray.Direction.Y
	inside := h.Inside(ray.Origin)

	if inside {
		// Moving away from the line or parallel to it: the ray never leaves
		if denom >= 0 {
			return enclosingRecord(ray), true
		}
		t := -h.evaluate(ray.Origin) / denom
		if t <= 0 {
			// Sitting on the line and leaving immediately
			return nil, false
		}
		if t >= tMax {
			return enclosingRecord(ray), true
		}
		return boundaryRecord(ray, t, h.NormalAt), true
	}

	if ray.Direction.Dot(h.normal) >= 0 {
		return nil, false
	}
	t := -h.evaluate(ray.Origin) / denom
	if t <= 0 || t >= tMax {
		return nil, false
	}
	return boundaryRecord(ray, t, h.NormalAt), true
}
