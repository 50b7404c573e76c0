package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
)

// ToImage converts the frame to 8-bit RGBA. With gamma set, each channel is
// square-rooted (gamma 2) before quantization.
func (f *Frame) ToImage(gamma bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X, gamma),
				G: toByte(c.Y, gamma),
				B: toByte(c.Z, gamma),
				A: 255,
			})
		}
	}

	return img
}

// toByte quantizes a [0,1] channel by truncation
func toByte(v float64, gamma bool) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if gamma {
		v = math.Sqrt(v)
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255.0)
}

// EncodePNG writes the frame as a PNG image, gamma corrected if f.Gamma is set
func (f *Frame) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToImage(f.Gamma)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the frame to a PNG file
func (f *Frame) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer file.Close()

	return f.EncodePNG(file)
}
