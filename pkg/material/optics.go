package material

import (
	"math"

	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec2) core.Vec2 {
	// r = v - 2*dot(v,n)*n
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract bends the unit direction uv through a surface with unit normal n
// facing the incoming side, with eta the ratio of the indices of refraction
// (incident over transmitted). It returns false on total internal reflection.
func Refract(uv, n core.Vec2, eta float64) (core.Vec2, bool) {
	cosI := uv.Dot(n)
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return core.Vec2{}, false
	}
	a := eta*cosI + math.Sqrt(k)
	return uv.Mul(eta).Sub(n.Mul(a)), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, ior float64) float64 {
	r0 := (1 - ior) / (1 + ior)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// BeerLambert returns the fraction of radiance surviving distance through
// a medium with the given attenuation coefficient
func BeerLambert(coefficient, distance float64) float64 {
	return math.Exp(-coefficient * distance)
}

// HenyeyGreenstein evaluates the phase function for asymmetry g at the
// cosine between the propagation directions
func HenyeyGreenstein(g, cosTheta float64) float64 {
	denom := 1 + g*g - 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * denom * math.Sqrt(denom))
}

// SampleHenyeyGreenstein draws the cosine of the scattering angle relative to
// the propagation direction
func SampleHenyeyGreenstein(g, u float64) float64 {
	if math.Abs(g) < 1e-3 {
		return 1 - 2*u
	}
	sqrTerm := (1 - g*g) / (1 - g + 2*g*u)
	cosTheta := (1 + g*g - sqrTerm*sqrTerm) / (2 * g)
	return max(-1, min(1, cosTheta))
}
