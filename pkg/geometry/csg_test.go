package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/material"
)

func randomPoint(random *rand.Rand) core.Vec2 {
	return core.NewVec2(random.Float64()*450, random.Float64()*450)
}

func TestCSG_ContainmentMatchesSetAlgebra(t *testing.T) {
	a := NewDisk(core.NewVec2(200, 225), 80)
	b := NewHalfPlane(1, 0, -220) // x >= 220

	union := NewUnion(a, b)
	intersection := NewIntersection(a, b)
	difference := NewDifference(a, b)

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		p := randomPoint(random)
		inA, inB := a.Inside(p), b.Inside(p)

		if got := union.Inside(p); got != (inA || inB) {
			t.Fatalf("Union.Inside(%v) = %v, expected %v", p, got, inA || inB)
		}
		if got := intersection.Inside(p); got != (inA && inB) {
			t.Fatalf("Intersection.Inside(%v) = %v, expected %v", p, got, inA && inB)
		}
		if got := difference.Inside(p); got != (inA && !inB) {
			t.Fatalf("Difference.Inside(%v) = %v, expected %v", p, got, inA && !inB)
		}
	}
}

func TestCSG_HitPointsLieOnCompositeBoundary(t *testing.T) {
	surfaces := map[string]Surface{
		"union":        NewUnion(NewDisk(core.NewVec2(200, 225), 60), NewDisk(core.NewVec2(260, 225), 60)),
		"intersection": NewIntersection(NewDisk(core.NewVec2(220, 226), 60), NewDisk(core.NewVec2(220, 274), 60)),
		"difference":   NewDifference(NewDisk(core.NewVec2(225, 225), 80), NewDisk(core.NewVec2(225, 225), 40)),
		"box":          NewBox(150, 150, 290, 290),
	}

	for name, surface := range surfaces {
		t.Run(name, func(t *testing.T) {
			random := rand.New(rand.NewSource(7))
			hits := 0
			for i := 0; i < 200; i++ {
				origin := randomPoint(random)
				direction := core.DirectionFromAngle(random.Float64() * 2 * math.Pi)
				ray := core.NewRay(origin, direction)

				hit, isHit := surface.Hit(ray, math.Inf(1))
				if !isHit || hit.Enclosing {
					continue
				}
				hits++
				if !surface.OnBoundary(hit.Point) {
					t.Errorf("Hit point %v should lie on the boundary", hit.Point)
				}
				// Just before the hit the ray is on the side it started from
				before := ray.At(hit.T * 0.5)
				if surface.Inside(before) != surface.Inside(origin) {
					t.Errorf("Ray from %v crossed the boundary before t=%f", origin, hit.T)
				}
				if math.Abs(hit.Normal.Length()-1) > 1e-9 {
					t.Errorf("Normal %v should be unit length", hit.Normal)
				}
			}
			if hits == 0 {
				t.Error("Expected at least one boundary hit")
			}
		})
	}
}

func TestUnion_Hit_ClosestChild(t *testing.T) {
	union := NewUnion(NewDisk(core.NewVec2(10, 0), 1), NewDisk(core.NewVec2(5, 0), 1))
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))

	hit, isHit := union.Hit(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected nearer disk at t=4, got t=%f", hit.T)
	}

	if _, isHit := union.Hit(ray, 3); isHit {
		t.Error("Composite should apply the caller's extent")
	}
}

func TestUnion_Hit_EnclosingWins(t *testing.T) {
	union := NewUnion(NewHalfPlane(0, 1, 0), NewDisk(core.NewVec2(0, 50), 5))
	ray := core.NewRay(core.NewVec2(0, 10), core.NewVec2(0, 1))

	hit, isHit := union.Hit(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Ray inside the half-plane should get a record")
	}
	if !hit.Enclosing {
		t.Errorf("Expected enclosing record, got crossing at t=%f", hit.T)
	}
}

func TestIntersection_Hit_LensEntry(t *testing.T) {
	// Lens formed by two overlapping disks
	lower := NewDisk(core.NewVec2(0, -3), 10)
	lens := NewIntersection(lower, NewDisk(core.NewVec2(0, 3), 10))
	ray := core.NewRay(core.NewVec2(-20, 1), core.NewVec2(1, 0))

	hit, isHit := lens.Hit(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	// The ray enters the upper disk first, the lens starts where it enters the lower one
	expected := core.NewVec2(-math.Sqrt(84), 1)
	if hit.Point.Sub(expected).Length() > 1e-9 {
		t.Errorf("Expected entry at %v, got %v", expected, hit.Point)
	}
	if hit.Normal.Sub(lower.NormalAt(expected)).Length() > 1e-9 {
		t.Errorf("Expected the lower disk's normal, got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Entry should be a front-face hit")
	}
}

func TestIntersection_Hit_DisjointMisses(t *testing.T) {
	disjoint := NewIntersection(NewDisk(core.NewVec2(0, 0), 1), NewDisk(core.NewVec2(10, 0), 1))
	ray := core.NewRay(core.NewVec2(-5, 0), core.NewVec2(1, 0))

	if hit, isHit := disjoint.Hit(ray, math.Inf(1)); isHit {
		t.Errorf("Expected miss for disjoint children, got hit at %v", hit.Point)
	}
	if disjoint.HitAny(ray) {
		t.Error("HitAny should be false for disjoint children")
	}
}

func TestIntersection_Hit_BothEnclosing(t *testing.T) {
	quadrant := NewIntersection(NewHalfPlane(1, 0, 0), NewHalfPlane(0, 1, 0))
	ray := core.NewRay(core.NewVec2(5, 5), core.NewVec2(1, 1))

	hit, isHit := quadrant.Hit(ray, math.Inf(1))
	if !isHit || !hit.Enclosing {
		t.Errorf("Expected enclosing record, got %v %v", hit, isHit)
	}
}

func TestBox_HitFromOutsideAndInside(t *testing.T) {
	box := NewBox(150, 150, 290, 290)

	tests := []struct {
		name      string
		ray       core.Ray
		expected  core.Vec2
		normal    core.Vec2
		frontFace bool
	}{
		{"enter left", core.NewRay(core.NewVec2(0, 220), core.NewVec2(1, 0)), core.NewVec2(150, 220), core.NewVec2(-1, 0), true},
		{"enter top", core.NewRay(core.NewVec2(220, 400), core.NewVec2(0, -1)), core.NewVec2(220, 290), core.NewVec2(0, 1), true},
		{"exit right", core.NewRay(core.NewVec2(220, 220), core.NewVec2(1, 0)), core.NewVec2(290, 220), core.NewVec2(1, 0), false},
		{"exit bottom", core.NewRay(core.NewVec2(220, 220), core.NewVec2(0, -1)), core.NewVec2(220, 150), core.NewVec2(0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Hit(tt.ray, math.Inf(1))
			if !isHit || hit.Enclosing {
				t.Fatal("Expected a boundary crossing")
			}
			if hit.Point.Sub(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected hit at %v, got %v", tt.expected, hit.Point)
			}
			if hit.Normal.Sub(tt.normal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.normal, hit.Normal)
			}
			if hit.FrontFace != tt.frontFace {
				t.Errorf("FrontFace = %v, expected %v", hit.FrontFace, tt.frontFace)
			}
		})
	}

	miss := core.NewRay(core.NewVec2(0, 0), core.NewVec2(-1, 0))
	if _, isHit := box.Hit(miss, math.Inf(1)); isHit {
		t.Error("Ray pointing away from the box should miss")
	}
}

func TestDifference_Hit_Ring(t *testing.T) {
	ring := NewDifference(NewDisk(core.NewVec2(0, 0), 10), NewDisk(core.NewVec2(0, 0), 5))

	// From the hole outward: first crossing is the inner circle, facing into the ring
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))
	hit, isHit := ring.Hit(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on the inner boundary")
	}
	if math.Abs(hit.T-5) > 1e-9 {
		t.Errorf("Expected t=5, got t=%f", hit.T)
	}
	if hit.Normal.Sub(core.NewVec2(-1, 0)).Length() > 1e-9 {
		t.Errorf("Inner boundary normal should point into the hole, got %v", hit.Normal)
	}
	if !hit.FrontFace {
		t.Error("Ray from the hole should hit the ring's front face")
	}

	// From outside: first crossing is the outer circle
	ray = core.NewRay(core.NewVec2(-20, 0), core.NewVec2(1, 0))
	hit, isHit = ring.Hit(ray, math.Inf(1))
	if !isHit || math.Abs(hit.T-10) > 1e-9 {
		t.Errorf("Expected outer hit at t=10, got %v %v", hit, isHit)
	}

	// Normal at the inner boundary point agrees with the hit record
	normal := ring.NormalAt(core.NewVec2(5, 0))
	if normal.Sub(core.NewVec2(-1, 0)).Length() > 1e-9 {
		t.Errorf("Expected NormalAt (-1, 0), got %v", normal)
	}
}

func TestDifference_Hit_RayInsideSubtrahend(t *testing.T) {
	// The half-plane y >= 0 removes the whole upper side
	cut := NewDifference(NewDisk(core.NewVec2(0, 0), 10), NewHalfPlane(0, 1, 0))
	ray := core.NewRay(core.NewVec2(0, 5), core.NewVec2(1, 0))

	if hit, isHit := cut.Hit(ray, math.Inf(1)); isHit {
		t.Errorf("Ray wholly inside the removed region should miss, got %v", hit.Point)
	}
}

func TestDifference_Hit_OffCentreBite(t *testing.T) {
	// The bite's left edge lies outside the disk and the disk's left edge lies
	// inside the bite, so the first boundary of the region is the bite's far side
	bitten := NewDifference(NewDisk(core.NewVec2(0, 0), 10), NewDisk(core.NewVec2(-10, 0), 5))
	ray := core.NewRay(core.NewVec2(-30, 0), core.NewVec2(1, 0))

	if !bitten.Inside(core.NewVec2(0, 0)) {
		t.Fatal("Disk center should remain after the bite")
	}

	hit, isHit := bitten.Hit(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Expected the ray to reach the bitten disk")
	}
	if math.Abs(hit.T-25) > 1e-9 || math.Abs(hit.Point.X+5) > 1e-9 {
		t.Errorf("Expected hit at x=-5 (t=25), got %v at t=%f", hit.Point, hit.T)
	}
	if hit.Normal.Sub(core.NewVec2(-1, 0)).Length() > 1e-9 || !hit.FrontFace {
		t.Errorf("Expected front-face normal (-1, 0), got %v front=%v", hit.Normal, hit.FrontFace)
	}
	if !bitten.HitAny(ray) {
		t.Error("HitAny should agree with Hit")
	}

	tests := []struct {
		name  string
		tMax  float64
		isHit bool
	}{
		{"extent short of the far side", 25, false},
		{"extent past the far side", 25.001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := bitten.Hit(ray, tt.tMax); got != tt.isHit {
				t.Errorf("Hit with tMax=%f = %v, expected %v", tt.tMax, got, tt.isHit)
			}
		})
	}
}

func TestDifference_Hit_MatchesMarching(t *testing.T) {
	bitten := NewDifference(NewDisk(core.NewVec2(225, 225), 90), NewDisk(core.NewVec2(160, 200), 60))
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 300; i++ {
		origin := randomPoint(random)
		ray := core.NewRay(origin, core.DirectionFromAngle(random.Float64()*2*math.Pi))

		// March the ray to find where it first changes side
		startInside := bitten.Inside(origin)
		crossing := -1.0
		for step := 0.5; step < 700; step += 0.5 {
			if bitten.Inside(ray.At(step)) != startInside {
				crossing = step
				break
			}
		}

		hit, isHit := bitten.Hit(ray, math.Inf(1))
		if crossing < 0 {
			continue
		}
		if !isHit || hit.Enclosing {
			t.Fatalf("Ray from %v dir %v changes side near t=%f but Hit missed", origin, ray.Direction, crossing)
		}
		if hit.T > crossing {
			t.Errorf("Ray from %v: hit at t=%f is past the side change near t=%f", origin, hit.T, crossing)
		}
		if bitten.Inside(ray.At(hit.T+1e-7)) == startInside {
			t.Errorf("Ray from %v should change side just past t=%f", origin, hit.T)
		}
	}
}

func TestNormalAt_SharedCorner(t *testing.T) {
	box := NewBox(0, 0, 10, 10)
	normal := box.NormalAt(core.NewVec2(10, 10))
	expected := core.Normalize(core.NewVec2(1, 1))
	if normal.Sub(expected).Length() > 1e-9 {
		t.Errorf("Expected corner normal %v, got %v", expected, normal)
	}

	interior := box.NormalAt(core.NewVec2(5, 5))
	if interior != core.NewVec2(0, 1) {
		t.Errorf("Expected fallback normal (0, 1), got %v", interior)
	}
}

func TestHalfPlaneMirror_HitFromInsideReportsFailure(t *testing.T) {
	plane := NewHalfPlane(0, 1, -100)
	mirror := material.NewMirror(core.White)
	ray := core.NewRay(core.NewVec2(0, 150), core.NewVec2(0, -1))

	hit, isHit := plane.Hit(ray, math.Inf(1))
	if !isHit || hit.Enclosing {
		t.Fatal("Expected the ray to cross the line")
	}
	if hit.Point.Sub(core.NewVec2(0, 100)).Length() > 1e-9 {
		t.Errorf("Expected hit at (0, 100), got %v", hit.Point)
	}

	// The ray comes from inside the half-plane, so the mirror reports failure
	scatter, ok := mirror.Scatter(ray, *hit, core.NewRandomSampler(rand.New(rand.NewSource(1))))
	if ok {
		t.Error("Mirror hit from inside should not scatter")
	}
	if scatter.Scattered.Direction.Sub(core.NewVec2(0, 1)).Length() > 1e-9 {
		t.Errorf("Expected reflected direction (0, 1), got %v", scatter.Scattered.Direction)
	}
}
