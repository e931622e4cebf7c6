package renderer

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Frame is a row-major grid of clamped colours, one per pixel
type Frame struct {
	Width  int
	Height int
	Pixels []core.Colour
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Colour, width*height),
	}
}

// Bounds returns the pixel rectangle covered by the frame
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At returns the colour of pixel (x, y)
func (f *Frame) At(x, y int) core.Colour {
	return f.Pixels[y*f.Width+x]
}

// Set stores the colour of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Colour) {
	f.Pixels[y*f.Width+x] = c
}

// SubFrame copies the pixels inside bounds into a new frame
func (f *Frame) SubFrame(bounds image.Rectangle) *Frame {
	bounds = bounds.Intersect(f.Bounds())
	sub := NewFrame(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := f.Pixels[y*f.Width+bounds.Min.X : y*f.Width+bounds.Max.X]
		copy(sub.Pixels[(y-bounds.Min.Y)*sub.Width:], row)
	}
	return sub
}

// AverageLuminance returns the mean perceptual luminance over all pixels
func (f *Frame) AverageLuminance() float64 {
	if len(f.Pixels) == 0 {
		return 0
	}
	var total float64
	for _, c := range f.Pixels {
		total += float64(c.Luminance())
	}
	return total / float64(len(f.Pixels))
}

// MaxDifference returns the largest per-channel difference between two
// frames of the same size
func (f *Frame) MaxDifference(other *Frame) (float32, error) {
	if f.Width != other.Width || f.Height != other.Height {
		return 0, fmt.Errorf("frame size %dx%d does not match %dx%d", f.Width, f.Height, other.Width, other.Height)
	}

	var maxDiff float32
	for i, c := range f.Pixels {
		o := other.Pixels[i]
		maxDiff = math32.Max(maxDiff, math32.Abs(c.R-o.R))
		maxDiff = math32.Max(maxDiff, math32.Abs(c.G-o.G))
		maxDiff = math32.Max(maxDiff, math32.Abs(c.B-o.B))
	}
	return maxDiff, nil
}
