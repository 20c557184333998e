package integrator

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along the reversed ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color
}

// SegmentRecorder receives every traced path segment.
// Implementations must be safe for concurrent use when rendering with multiple workers.
type SegmentRecorder interface {
	RecordSegment(from, to core.Vec2)
}
