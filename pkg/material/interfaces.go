package material

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// Material interface for objects that can emit or scatter rays
type Material interface {
	// IsLight reports whether the material is a radiance source
	IsLight() bool

	// IsMedium reports whether the material is a participating medium
	IsMedium() bool

	// Emitted returns the radiance leaving the surface
	Emitted() core.Color

	// Scatter produces the next ray of the path. A false result terminates the path.
	Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered     core.Ray   // The scattered ray
	Attenuation   core.Color // Channel-wise attenuation in [0, 1]
	Transmittance float64    // Fraction surviving the medium segment (1 for surfaces)
}

// SurfaceInteraction contains information about a ray-surface intersection
type SurfaceInteraction struct {
	T            float64   // Parameter t along the ray
	Point        core.Vec2 // Point of intersection
	Normal       core.Vec2 // Outward unit normal of the surface at Point
	FrontFace    bool      // Whether the ray hit the outside of the surface
	Wo           core.Vec2 // Direction back toward the ray origin
	Distance     float64   // Scaled length of the segment from the ray origin to Point
	PathDistance float64   // Scaled length of the whole path up to Point
	Material     Material  // Material of the hit object

	// Enclosing marks a record that carries no boundary crossing: the ray
	// starts inside the surface and stays inside for its whole extent.
	// Combinators use it for containment; scenes never report it as a hit.
	Enclosing bool
}

// SetFaceNormal sets the outward normal, the front face flag and Wo
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec2) {
	h.Normal = outwardNormal
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	h.Wo = core.Negate(ray.Direction)
}

// FacingNormal returns the normal flipped onto the side the ray arrived from
func (h *SurfaceInteraction) FacingNormal() core.Vec2 {
	if h.FrontFace {
		return h.Normal
	}
	return core.Negate(h.Normal)
}
