package output

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
)

// WritePPM writes img to w in the plain-text P3 format, one pixel per line
func WritePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("failed to write PPM pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

// SavePPM writes img to path in the P3 format
func SavePPM(path string, img *image.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WritePPM(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Save writes img to path in the given format ("png" or "ppm")
func Save(path, format string, img *image.RGBA) error {
	switch format {
	case "png":
		return SavePNG(path, img)
	case "ppm":
		return SavePPM(path, img)
	default:
		return fmt.Errorf("unknown output format %q (use png or ppm)", format)
	}
}
