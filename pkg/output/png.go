package output

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
)

// SavePNG writes img to path as a PNG
func SavePNG(path string, img *image.RGBA) error {
	if err := gg.NewContextForRGBA(img).SavePNG(path); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes img to w as a PNG
func EncodePNG(w io.Writer, img *image.RGBA) error {
	if err := gg.NewContextForRGBA(img).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
