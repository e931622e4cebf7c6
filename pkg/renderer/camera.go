package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Camera generates primary rays. It sits at the origin looking down the
// negative Z axis with +Y up; the field of view spans the image width.
type Camera struct {
	origin        core.Point
	width         float64
	height        float64
	aspectRatio   float64
	fovAdjustment float64
}

// NewCamera creates a camera for an image of the given size. The field of
// view math requires a landscape image; width <= height panics.
func NewCamera(width, height int, fovDegrees float64) *Camera {
	if width <= height {
		panic(fmt.Sprintf("renderer: image width %d must be greater than height %d", width, height))
	}

	return &Camera{
		origin:        core.Origin(),
		width:         float64(width),
		height:        float64(height),
		aspectRatio:   float64(width) / float64(height),
		fovAdjustment: math.Tan(fovDegrees * (math.Pi / 180) / 2),
	}
}

// GetRay returns the primary ray through the centre of pixel (x, y), with
// y = 0 the top row
func (c *Camera) GetRay(x, y int) core.Ray {
	sensorX := ((((float64(x)+0.5)/c.width)*2 - 1) * c.aspectRatio) * c.fovAdjustment
	sensorY := (1 - ((float64(y)+0.5)/c.height)*2) * c.fovAdjustment

	return core.NewRay(c.origin, core.NewVec3(sensorX, sensorY, -1).Normalize())
}
