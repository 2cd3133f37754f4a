package renderer

import (
	"image"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// Frame holds output colors in row-major order, row 0 at the top
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color at column x of row y
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// SetRow copies a full scanline into the frame
func (f *Frame) SetRow(y int, colors []core.Color) {
	copy(f.Pixels[y*f.Width:(y+1)*f.Width], colors)
}

// Image converts the frame to an 8-bit RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, ToRGBA(f.At(x, y)))
		}
	}
	return img
}
