package integrator

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/material"
	"github.com/df07/go-flatland-raytracer/pkg/scene"
)

// LightTracingIntegrator follows a ray through reflections, refractions and
// media until it leaves the scene or runs out of depth, summing emission
// along the way
type LightTracingIntegrator struct {
	transport core.TransportConfig
	maxDepth  int
	recorder  SegmentRecorder
}

// NewLightTracingIntegrator creates a new integrator
func NewLightTracingIntegrator(transport core.TransportConfig, maxDepth int) *LightTracingIntegrator {
	return &LightTracingIntegrator{
		transport: transport,
		maxDepth:  maxDepth,
	}
}

// SetSegmentRecorder installs a hook that sees every traced segment. Nil disables it.
func (lt *LightTracingIntegrator) SetSegmentRecorder(recorder SegmentRecorder) {
	lt.recorder = recorder
}

// RayColor computes the radiance for a single ray
func (lt *LightTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color {
	return lt.trace(ray, scene, sampler, lt.maxDepth, 0)
}

// trace returns the radiance along ray with depth bounces left
func (lt *LightTracingIntegrator) trace(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int, pathDistance float64) core.Color {
	hit, isHit := scene.Intersect(ray)
	if !isHit {
		return lt.transport.Background
	}

	if lt.recorder != nil {
		lt.recorder.RecordSegment(ray.Origin, hit.Point)
	}

	sum := hit.Material.Emitted()
	hit.Distance = core.Distance(hit.Point, ray.Origin) * lt.transport.DistanceScale
	hit.PathDistance = pathDistance + hit.Distance

	// Hard cutoff, a path at depth 0 never recurses
	if depth <= 0 {
		return sum
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return sum
	}

	incoming := lt.trace(scatter.Scattered, scene, sampler, depth-1, hit.PathDistance)
	contribution := scatter.Attenuation.MultiplyColor(incoming)

	if hit.Material.IsMedium() {
		return sum.Add(contribution.Multiply(scatter.Transmittance))
	}

	absorb := 1.0
	if scene.IsInside(ray.Origin) {
		absorb = material.BeerLambert(lt.transport.AbsorptionCoefficient, hit.Distance)
	}
	return sum.Add(contribution.Multiply(absorb))
}
