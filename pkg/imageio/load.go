package imageio

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/renderer"
)

// LoadFrame reads an image file back into a frame, e.g. a reference render
// to compare against
func LoadFrame(path string) (*renderer.Frame, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts any image to a frame with channels in [0, 1]. Alpha is
// ignored.
func FromImage(img image.Image) *renderer.Frame {
	bounds := img.Bounds()
	frame := renderer.NewFrame(bounds.Dx(), bounds.Dy())

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			frame.Set(x, y, core.NewColour(
				float32(r)/65535,
				float32(g)/65535,
				float32(b)/65535,
			))
		}
	}

	return frame
}
