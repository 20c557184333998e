package output

import (
	"image"
	"sync"

	"github.com/fogleman/gg"

	"github.com/df07/go-flatland-raytracer/pkg/core"
)

// DefaultMaxSegments bounds the number of segments a DebugOverlay keeps
const DefaultMaxSegments = 200000

type segment struct {
	from, to core.Vec2
}

// DebugOverlay records traced path segments and draws them as red lines
// on a black canvas. It is safe for concurrent use.
type DebugOverlay struct {
	width, height int
	maxSegments   int

	mu       sync.Mutex
	segments []segment
	dropped  int
}

// NewDebugOverlay creates an overlay for an image of the given size.
// A non-positive maxSegments uses DefaultMaxSegments.
func NewDebugOverlay(width, height, maxSegments int) *DebugOverlay {
	if maxSegments <= 0 {
		maxSegments = DefaultMaxSegments
	}
	return &DebugOverlay{
		width:       width,
		height:      height,
		maxSegments: maxSegments,
	}
}

// RecordSegment stores a segment, or counts it as dropped once the overlay is full
func (d *DebugOverlay) RecordSegment(from, to core.Vec2) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.segments) >= d.maxSegments {
		d.dropped++
		return
	}
	d.segments = append(d.segments, segment{from: from, to: to})
}

// Len returns the number of stored segments
func (d *DebugOverlay) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.segments)
}

// Dropped returns how many segments arrived after the overlay was full
func (d *DebugOverlay) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Render draws every stored segment
func (d *DebugOverlay) Render() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
	dc := gg.NewContextForRGBA(img)
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	dc.SetRGB(1, 0, 0)
	dc.SetLineWidth(1)
	for _, s := range d.segments {
		dc.DrawLine(s.from.X, s.from.Y, s.to.X, s.to.Y)
	}
	dc.Stroke()

	return img
}

// SavePNG renders the overlay and writes it to path
func (d *DebugOverlay) SavePNG(path string) error {
	return SavePNG(path, d.Render())
}
