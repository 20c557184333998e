package renderer

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/df07/go-flatland-raytracer/pkg/core"
	"github.com/df07/go-flatland-raytracer/pkg/integrator"
	"github.com/df07/go-flatland-raytracer/pkg/scene"
)

// toneScale and toneDivisor shape the final 8-bit curve
const (
	toneScale   = 0.999 * 255
	toneDivisor = 256
)

// Raytracer estimates pixel colors by shooting jittered rays in every
// direction from each pixel center
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     core.SamplingConfig
	random     *rand.Rand
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene *scene.Scene, integrator integrator.Integrator, config core.SamplingConfig) *Raytracer {
	return &Raytracer{
		scene:      scene,
		integrator: integrator,
		config:     config,
		random:     rand.New(rand.NewSource(42)), // Deterministic for testing
	}
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() core.SamplingConfig {
	return rt.config
}

// sweep traces one stratified set of directions from the center of pixel (x, y)
func (rt *Raytracer) sweep(x, y int, sampler core.Sampler, add func(core.Color)) {
	center := core.NewVec2(float64(x)+0.5, float64(y)+0.5)
	n := rt.config.SamplesPerPixel

	for i := 0; i < n; i++ {
		angle := core.JitteredAngle(i, n, sampler.Get1D())
		ray := core.NewRay(center, core.DirectionFromAngle(angle))
		add(rt.integrator.RayColor(ray, rt.scene, sampler))
	}
}

// SamplePixel returns the raw average radiance of one sweep at pixel (x, y)
func (rt *Raytracer) SamplePixel(x, y int, sampler core.Sampler) core.Color {
	var ps PixelStats
	rt.sweep(x, y, sampler, ps.AddSample)
	return ps.GetColor()
}

// PixelColor returns the tone-mapped color of one sweep at pixel (x, y)
func (rt *Raytracer) PixelColor(x, y int, sampler core.Sampler) core.Color {
	return rt.ToneMap(rt.SamplePixel(x, y, sampler))
}

// ToneMap clamps averaged radiance and applies the display curve.
// The result holds integer channel values in [0, 255].
func (rt *Raytracer) ToneMap(radiance core.Color) core.Color {
	c := radiance.Clamp(0, rt.config.MaxChannel)
	curve := func(v float64) float64 {
		return math.Floor(toneScale * math.Pow(v/toneDivisor, rt.config.ToneExponent))
	}
	return core.NewColor(curve(c.R), curve(c.G), curve(c.B))
}

// colorToRGBA converts averaged radiance to an opaque 8-bit pixel
func (rt *Raytracer) colorToRGBA(radiance core.Color) color.RGBA {
	c := rt.ToneMap(radiance)
	return color.RGBA{
		R: uint8(c.R),
		G: uint8(c.G),
		B: uint8(c.B),
		A: 255,
	}
}

// RenderBounds adds one sweep to every pixel within bounds
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand) RenderStats {
	sampler := core.NewRandomSampler(random)
	samples := rt.config.SamplesPerPixel

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  samples,
		MinSamples:  math.MaxInt,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			rt.sweep(x, y, sampler, ps.AddSample)

			stats.TotalSamples += samples
			stats.MinSamples = min(stats.MinSamples, ps.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, ps.SampleCount)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	} else {
		stats.MinSamples = 0
	}
	return stats
}

// RenderPass renders the whole image single-threaded with one sweep per pixel
func (rt *Raytracer) RenderPass() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	sampler := core.NewRandomSampler(rt.random)

	for y := 0; y < rt.config.Height; y++ {
		for x := 0; x < rt.config.Width; x++ {
			img.SetRGBA(x, y, rt.colorToRGBA(rt.SamplePixel(x, y, sampler)))
		}
	}

	return img
}
