package core

import "math"

// Color is an RGB radiance triple. Channels are unbounded until the final
// pixel write.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	invariant(!math.IsNaN(r) && !math.IsNaN(g) && !math.IsNaN(b), "color with NaN channel: (%v, %v, %v)", r, g, b)
	return Color{R: r, G: g, B: b}
}

// Black is the zero radiance
var Black = Color{}

// White is the identity for channel-wise modulation
var White = Color{R: 1, G: 1, B: 1}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns channel-wise modulation of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// Pow raises every channel to the given exponent
func (c Color) Pow(exponent float64) Color {
	return Color{
		R: math.Pow(c.R, exponent),
		G: math.Pow(c.G, exponent),
		B: math.Pow(c.B, exponent),
	}
}

// IsNegative reports whether any channel is below zero
func (c Color) IsNegative() bool {
	return c.R < 0 || c.G < 0 || c.B < 0
}

// HasNaN reports whether any channel is NaN
func (c Color) HasNaN() bool {
	return math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B)
}

// Luminance returns the perceptual luminance of the color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Equals reports exact channel equality
func (c Color) Equals(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}
