package material

import (
	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emission core.Color // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Color) *Emissive {
	core.Invariant(!emission.HasNaN(), "emissive radiance has NaN channel: %v", emission)
	return &Emissive{Emission: emission}
}

func (e *Emissive) IsLight() bool { return true }
func (e *Emissive) IsMedium() bool { return false }

// Emitted returns the emitted light for this material
func (e *Emissive) Emitted() core.Color {
	return e.Emission
}

// Scatter implements the Material interface for emissive materials
// Emissive materials don't scatter - they absorb all incoming rays
func (e *Emissive) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}
