package material

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// DefaultMirrorOffset is how far reflected rays start off the surface
const DefaultMirrorOffset = 0.001

// Mirror represents a perfect specular reflector
type Mirror struct {
	Albedo core.Color // Reflected fraction per channel
	Offset float64    // Distance the reflected origin is pushed off the surface
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Color) *Mirror {
	return &Mirror{Albedo: albedo, Offset: DefaultMirrorOffset}
}

func (m *Mirror) IsLight() bool { return false }
func (m *Mirror) IsMedium() bool { return false }
func (m *Mirror) Emitted() core.Color { return core.Black }

// Scatter implements the Material interface for mirror reflection.
// The ray is reflected about the outward normal, so a mirror only
// reflects on its outer side and a hit from inside ends the path.
func (m *Mirror) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Normalize(Reflect(rayIn.Direction, hit.Normal))

	scattered := core.NewRay(hit.Point.Add(hit.Normal.Mul(m.Offset)), reflected)

	// Only scatter if the ray leaves the outer side
	scatters := reflected.Dot(hit.Normal) > 0

	return ScatterResult{
		Scattered:     scattered,
		Attenuation:   m.Albedo,
		Transmittance: 1,
	}, scatters
}
