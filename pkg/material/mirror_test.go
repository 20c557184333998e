package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-flatland-raytracer/pkg/core"
)

func TestMirror_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	mirror := NewMirror(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting a surface at 45 degrees
	rayIn := core.NewRay(core.NewVec2(-1, 1), core.Normalize(core.NewVec2(1, -1)))
	hit := SurfaceInteraction{Point: core.NewVec2(0, 0)}
	hit.SetFaceNormal(rayIn, core.NewVec2(0, 1))

	scatter, didScatter := mirror.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Mirror should scatter")
	}

	expected := core.Normalize(core.NewVec2(1, 1))
	if scatter.Scattered.Direction.Sub(expected).Length() > 1e-10 {
		t.Errorf("Expected direction %v, got %v", expected, scatter.Scattered.Direction)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	// Origin is lifted off the surface on the incoming side
	if math.Abs(scatter.Scattered.Origin.Y-DefaultMirrorOffset) > 1e-12 {
		t.Errorf("Expected origin offset %f along the normal, got %v", DefaultMirrorOffset, scatter.Scattered.Origin)
	}
}

func TestMirror_HitFromInsideFails(t *testing.T) {
	mirror := NewMirror(core.White)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	// Outward normal points down, ray travels down: the ray hits the back face
	rayIn := core.NewRay(core.NewVec2(0, 150), core.NewVec2(0, -1))
	hit := SurfaceInteraction{Point: core.NewVec2(0, 100)}
	hit.SetFaceNormal(rayIn, core.NewVec2(0, -1))

	if hit.FrontFace {
		t.Fatal("Expected back face hit")
	}

	scatter, ok := mirror.Scatter(rayIn, hit, sampler)
	if ok {
		t.Error("Mirror should not reflect a back face hit")
	}
	// Reflected about the outward normal the ray still heads back up, into the object
	d := scatter.Scattered.Direction
	if math.Abs(d.X) > 1e-12 || math.Abs(d.Y-1) > 1e-12 {
		t.Errorf("Expected (0, 1), got %v", d)
	}
	if o := scatter.Scattered.Origin; math.Abs(o.Y-(100-DefaultMirrorOffset)) > 1e-12 {
		t.Errorf("Expected origin offset along the outward normal, got %v", o)
	}
}

func TestMirror_GrazingRayFails(t *testing.T) {
	mirror := NewMirror(core.White)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	// Travelling along the surface: the reflection does not leave it
	rayIn := core.NewRay(core.NewVec2(-1, 0), core.NewVec2(1, 0))
	hit := SurfaceInteraction{Point: core.NewVec2(0, 0)}
	hit.SetFaceNormal(rayIn, core.NewVec2(0, 1))

	if _, ok := mirror.Scatter(rayIn, hit, sampler); ok {
		t.Error("Grazing reflection should not scatter")
	}
}
