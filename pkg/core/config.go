package core

import "fmt"

// BoundaryEpsilon is the residual tolerance for on-boundary tests
const BoundaryEpsilon = 1e-6

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Jittered directions per pixel per pass
	MaxDepth        int     // Maximum scattering depth
	MaxChannel      float64 // Averaged radiance is clamped to this before tone mapping
	ToneExponent    float64 // Exponent of the tone curve
}

// DefaultSamplingConfig returns the values the reference scenes were tuned for
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           450,
		Height:          450,
		SamplesPerPixel: 32,
		MaxDepth:        50,
		MaxChannel:      255,
		ToneExponent:    0.9,
	}
}

// Validate checks that the configuration can drive a render
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.MaxChannel <= 0 {
		return fmt.Errorf("max channel must be positive, got %f", c.MaxChannel)
	}
	if c.ToneExponent <= 0 {
		return fmt.Errorf("tone exponent must be positive, got %f", c.ToneExponent)
	}
	return nil
}

// TransportConfig holds the constants of the light transport estimator
type TransportConfig struct {
	Background            Color   // Radiance returned by rays that escape the scene
	AbsorptionCoefficient float64 // Beer-Lambert coefficient for segments starting inside an object
	DistanceScale         float64 // Converts scene units to the units the coefficients are expressed in
}

// DefaultTransportConfig returns the default transport constants
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Background:            NewColor(6, 6, 6),
		AbsorptionCoefficient: 0.34,
		DistanceScale:         0.001,
	}
}

// Validate checks the transport constants
func (c TransportConfig) Validate() error {
	if c.Background.IsNegative() {
		return fmt.Errorf("background radiance must not be negative, got %v", c.Background)
	}
	if c.AbsorptionCoefficient < 0 {
		return fmt.Errorf("absorption coefficient must not be negative, got %f", c.AbsorptionCoefficient)
	}
	if c.DistanceScale <= 0 {
		return fmt.Errorf("distance scale must be positive, got %f", c.DistanceScale)
	}
	return nil
}
