package lights

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Spherical is a point light radiating equally in all directions. Its
// intensity is total power, spread over a sphere and so falling off with the
// inverse square of distance.
type Spherical struct {
	Position  core.Point
	Colour    core.Colour
	Intensity float32
}

// NewSpherical creates a new spherical light
func NewSpherical(position core.Point, colour core.Colour, intensity float32) Spherical {
	return Spherical{
		Position:  position,
		Colour:    colour,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit direction from point toward the light
func (s Spherical) DirectionFrom(point core.Point) core.Vec3 {
	return s.Position.Subtract(point).Normalize()
}

// IntensityAt returns intensity / (4π r²) for the distance r to point
func (s Spherical) IntensityAt(point core.Point) float32 {
	r2 := float32(s.Position.Subtract(point).LengthSquared())
	return s.Intensity / (4 * math32.Pi * r2)
}

// Distance returns the Euclidean distance from point to the light
func (s Spherical) Distance(point core.Point) float64 {
	return s.Position.Subtract(point).Length()
}
