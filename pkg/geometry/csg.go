package geometry

import (
	"math"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

// Children of a composite are always intersected against the unbounded ray.
// Each child answers independently and the composite applies the caller's tMax
// to the record it settles on.

// combineNormals implements the shared normal rule of the combinators.
// Either normal function may be pre-negated by the caller.
func combineNormals(p core.Vec2, a, b Surface, normalA, normalB func(core.Vec2) core.Vec2) core.Vec2 {
	onA := a.OnBoundary(p)
	onB := b.OnBoundary(p)
	switch {
	case onA && onB:
		sum := normalA(p).Add(normalB(p))
		if sum.Length() == 0 {
			return normalA(p)
		}
		return core.Normalize(sum)
	case onA:
		return normalA(p)
	case onB:
		return normalB(p)
	default:
		return core.NewVec2(0, 1)
	}
}

// maxCrossings bounds how many boundary crossings a Difference follows along one ray
const maxCrossings = 64

// crossingStep is how far past a rejected crossing a child is cast again
const crossingStep = 1e-6

// nextCrossing casts s again from just past parameter t of ray and returns the
// following boundary crossing in ray's parameterization, or nil
func nextCrossing(s Surface, ray core.Ray, t float64) *material.SurfaceInteraction {
	start := t + crossingStep/ray.Direction.Length()
	hit, ok := s.Hit(core.NewRay(ray.At(start), ray.Direction), math.Inf(1))
	if !ok || hit.Enclosing {
		return nil
	}
	hit.T += start
	return hit
}

// withinExtent drops records at or beyond tMax
func withinExtent(hit *material.SurfaceInteraction, tMax float64) (*material.SurfaceInteraction, bool) {
	if hit == nil || hit.T >= tMax {
		return nil, false
	}
	return hit, true
}

// Union is the region covered by either child
type Union struct {
	A, B Surface
}

// NewUnion creates the union of two surfaces
func NewUnion(a, b Surface) *Union {
	core.Invariant(a != nil && b != nil, "union needs two children")
	return &Union{A: a, B: b}
}

// Inside reports whether p is in either child
func (u *Union) Inside(p core.Vec2) bool {
	return u.A.Inside(p) || u.B.Inside(p)
}

// OnBoundary reports whether p is on either child's boundary
func (u *Union) OnBoundary(p core.Vec2) bool {
	return u.A.OnBoundary(p) || u.B.OnBoundary(p)
}

// NormalAt combines the children's normals at p
func (u *Union) NormalAt(p core.Vec2) core.Vec2 {
	return combineNormals(p, u.A, u.B, u.A.NormalAt, u.B.NormalAt)
}

// Hit returns the closer of the two children's records
func (u *Union) Hit(ray core.Ray, tMax float64) (*material.SurfaceInteraction, bool) {
	hitA, okA := u.A.Hit(ray, math.Inf(1))
	hitB, okB := u.B.Hit(ray, math.Inf(1))

	switch {
	case okA && okB:
		if hitB.T < hitA.T {
			return withinExtent(hitB, tMax)
		}
		return withinExtent(hitA, tMax)
	case okA:
		return withinExtent(hitA, tMax)
	case okB:
		return withinExtent(hitB, tMax)
	default:
		return nil, false
	}
}

// HitAny reports whether the unbounded ray reaches the union
func (u *Union) HitAny(ray core.Ray) bool {
	_, ok := u.Hit(ray, math.Inf(1))
	return ok
}

// Intersection is the region covered by both children
type Intersection struct {
	A, B Surface
}

// NewIntersection creates the intersection of two surfaces
func NewIntersection(a, b Surface) *Intersection {
	core.Invariant(a != nil && b != nil, "intersection needs two children")
	return &Intersection{A: a, B: b}
}

// Inside reports whether p is in both children
func (in *Intersection) Inside(p core.Vec2) bool {
	return in.A.Inside(p) && in.B.Inside(p)
}

// OnBoundary reports whether p is on either child's boundary
func (in *Intersection) OnBoundary(p core.Vec2) bool {
	return in.A.OnBoundary(p) || in.B.OnBoundary(p)
}

// NormalAt combines the children's normals at p
func (in *Intersection) NormalAt(p core.Vec2) core.Vec2 {
	return combineNormals(p, in.A, in.B, in.A.NormalAt, in.B.NormalAt)
}

// Hit returns the closest child crossing that lies inside the other child
func (in *Intersection) Hit(ray core.Ray, tMax float64) (*material.SurfaceInteraction, bool) {
	hitA, okA := in.A.Hit(ray, math.Inf(1))
	if !okA {
		return nil, false
	}
	hitB, okB := in.B.Hit(ray, math.Inf(1))
	if !okB {
		return nil, false
	}

	if hitA.Enclosing && hitB.Enclosing {
		return withinExtent(hitA, tMax)
	}

	var best *material.SurfaceInteraction
	if !hitA.Enclosing && in.B.Inside(hitA.Point) {
		best = hitA
	}
	if !hitB.Enclosing && in.A.Inside(hitB.Point) && (best == nil || hitB.T < best.T) {
		best = hitB
	}
	return withinExtent(best, tMax)
}

// HitAny reports whether the unbounded ray reaches the intersection
func (in *Intersection) HitAny(ray core.Ray) bool {
	_, ok := in.Hit(ray, math.Inf(1))
	return ok
}

// Difference is the region of A not covered by B
type Difference struct {
	A, B Surface
}

// NewDifference creates the set difference a \ b
func NewDifference(a, b Surface) *Difference {
	core.Invariant(a != nil && b != nil, "difference needs two children")
	return &Difference{A: a, B: b}
}

// Inside reports whether p is in A and not in B
func (d *Difference) Inside(p core.Vec2) bool {
	return d.A.Inside(p) && !d.B.Inside(p)
}

// OnBoundary reports whether p is on either child's boundary
func (d *Difference) OnBoundary(p core.Vec2) bool {
	return d.A.OnBoundary(p) || d.B.OnBoundary(p)
}

// NormalAt combines A's normal with B's flipped normal
func (d *Difference) NormalAt(p core.Vec2) core.Vec2 {
	return combineNormals(p, d.A, d.B, d.A.NormalAt, d.negatedNormalB)
}

func (d *Difference) negatedNormalB(p core.Vec2) core.Vec2 {
	return core.Negate(d.B.NormalAt(p))
}

// Hit returns the first crossing of A outside B or of B inside A. A crossing
// that fails its test is stepped past and that child is cast again, so rays
// that enter B before reaching A still find B's far side.
func (d *Difference) Hit(ray core.Ray, tMax float64) (*material.SurfaceInteraction, bool) {
	hitA, okA := d.A.Hit(ray, math.Inf(1))
	if !okA {
		return nil, false
	}
	hitB, okB := d.B.Hit(ray, math.Inf(1))
	if !okB {
		return withinExtent(hitA, tMax)
	}
	if hitB.Enclosing {
		// The whole ray is inside B, so it never touches A \ B
		return nil, false
	}
	if hitA.Enclosing {
		// Never leaves A: only B's crossings remain
		hitA = nil
	}

	for i := 0; i < maxCrossings && (hitA != nil || hitB != nil); i++ {
		if hitA != nil && (hitB == nil || hitA.T <= hitB.T) {
			if hitA.T >= tMax {
				return nil, false
			}
			if !d.B.Inside(hitA.Point) {
				return hitA, true
			}
			hitA = nextCrossing(d.A, ray, hitA.T)
			continue
		}

		if hitB.T >= tMax {
			return nil, false
		}
		if d.A.Inside(hitB.Point) {
			flipped := *hitB
			flipped.Normal = core.Negate(hitB.Normal)
			flipped.FrontFace = !hitB.FrontFace
			return &flipped, true
		}
		hitB = nextCrossing(d.B, ray, hitB.T)
	}
	return nil, false
}

// HitAny reports whether the unbounded ray reaches the difference
func (d *Difference) HitAny(ray core.Ray) bool {
	_, ok := d.Hit(ray, math.Inf(1))
	return ok
}
