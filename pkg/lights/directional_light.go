package lights

import "github.com/df07/go-direct-raytracer/pkg/core"

// Directional is a light at infinity shining uniformly along Direction
type Directional struct {
	Direction core.Vec3 // Direction the light travels, not the direction toward it
	Colour    core.Colour
	Intensity float32
}

// NewDirectional creates a new directional light
func NewDirectional(direction core.Vec3, colour core.Colour, intensity float32) Directional {
	return Directional{
		Direction: direction,
		Colour:    colour,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit direction toward the light, which is the
// same for every point
func (d Directional) DirectionFrom(_ core.Point) core.Vec3 {
	return d.Direction.Negate().Normalize()
}
