package material

import (
	"math"

	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// DefaultMediumOffset is how far scattered rays are pushed across the boundary
const DefaultMediumOffset = 0.001

// Medium is a participating medium that scatters light at its boundary
// according to a Henyey-Greenstein phase function
type Medium struct {
	SigmaA float64 // Absorption coefficient
	SigmaS float64 // Scattering coefficient
	G      float64 // Phase function asymmetry in (-1, 1); 0 is isotropic
	Offset float64
}

// NewMedium creates a new participating medium
func NewMedium(sigmaA, sigmaS, g float64) *Medium {
	core.Invariant(sigmaA >= 0 && sigmaS >= 0, "medium coefficients must not be negative: sigmaA=%f sigmaS=%f", sigmaA, sigmaS)
	core.Invariant(g > -1 && g < 1, "phase asymmetry must be in (-1, 1), got %f", g)
	return &Medium{SigmaA: sigmaA, SigmaS: sigmaS, G: g, Offset: DefaultMediumOffset}
}

func (m *Medium) IsLight() bool { return false }
func (m *Medium) IsMedium() bool { return true }
func (m *Medium) Emitted() core.Color { return core.Black }

// Extinction returns the total attenuation coefficient
func (m *Medium) Extinction() float64 {
	return m.SigmaA + m.SigmaS
}

// Scatter implements the Material interface. A medium never absorbs the
// path outright; the loss over the segment is reported as transmittance.
func (m *Medium) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	cosTheta := SampleHenyeyGreenstein(m.G, sampler.Get1D())
	theta := math.Acos(cosTheta)
	if sampler.Get1D() < 0.5 {
		theta = -theta
	}
	direction := core.Rotate(core.Normalize(rayIn.Direction), theta)

	// Continue across the boundary in the direction of travel
	var origin core.Vec2
	if rayIn.Direction.Dot(hit.Normal) > 0 {
		origin = hit.Point.Add(hit.Normal.Mul(m.Offset))
	} else {
		origin = hit.Point.Sub(hit.Normal.Mul(m.Offset))
	}

	return ScatterResult{
		Scattered:     core.NewRay(origin, core.Normalize(direction)),
		Attenuation:   core.White,
		Transmittance: BeerLambert(m.Extinction(), hit.Distance),
	}, true
}
