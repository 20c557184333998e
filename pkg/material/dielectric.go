package material

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// DefaultDielectricOffset is how far refracted and reflected rays start off the boundary
const DefaultDielectricOffset = 0.01

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64    // Index of refraction (e.g., 1.5 for glass)
	Albedo          core.Color // Transmitted fraction per channel
	Offset          float64    // Distance new origins are pushed off the boundary
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64, albedo core.Color) *Dielectric {
	core.Invariant(refractiveIndex > 0, "refractive index must be positive, got %f", refractiveIndex)
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: albedo, Offset: DefaultDielectricOffset}
}

func (d *Dielectric) IsLight() bool { return false }
func (d *Dielectric) IsMedium() bool { return false }
func (d *Dielectric) Emitted() core.Color { return core.Black }

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	unitDirection := core.Normalize(rayIn.Direction)

	var origin, direction core.Vec2
	if unitDirection.Dot(hit.Normal) > 0 {
		// Leaving the material: glass to air, no Fresnel split
		normal := core.Negate(hit.Normal)
		if refracted, ok := Refract(unitDirection, normal, d.RefractiveIndex); ok {
			direction = refracted
			origin = hit.Point.Sub(normal.Mul(d.Offset))
		} else {
			// Total internal reflection keeps the ray inside
			direction = Reflect(unitDirection, normal)
			origin = hit.Point.Add(normal.Mul(d.Offset))
		}
	} else {
		normal := hit.Normal
		refracted, ok := Refract(unitDirection, normal, 1/d.RefractiveIndex)
		cosine := -unitDirection.Dot(normal)
		if ok && sampler.Get1D() >= Reflectance(cosine, d.RefractiveIndex) {
			direction = refracted
			origin = hit.Point.Sub(normal.Mul(d.Offset))
		} else {
			direction = Reflect(unitDirection, normal)
			origin = hit.Point.Add(normal.Mul(d.Offset))
		}
	}

	return ScatterResult{
		Scattered:     core.NewRay(origin, core.Normalize(direction)),
		Attenuation:   d.Albedo,
		Transmittance: 1,
	}, true
}
