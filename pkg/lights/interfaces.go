package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypeSpherical   LightType = "spherical"
)

// Light is a closed union over the supported light sources. Exactly one
// variant is meaningful, selected by Type. Every query is answered relative
// to a shading point.
type Light struct {
	kind        LightType
	directional Directional
	spherical   Spherical
}

// DirectionalOf wraps a directional light as a Light
func DirectionalOf(d Directional) Light {
	return Light{kind: LightTypeDirectional, directional: d}
}

// SphericalOf wraps a spherical light as a Light
func SphericalOf(s Spherical) Light {
	return Light{kind: LightTypeSpherical, spherical: s}
}

// Type returns the variant held by the light
func (l Light) Type() LightType {
	return l.kind
}

// Directional returns the directional variant and whether the light holds one
func (l Light) Directional() (Directional, bool) {
	return l.directional, l.kind == LightTypeDirectional
}

// Spherical returns the spherical variant and whether the light holds one
func (l Light) Spherical() (Spherical, bool) {
	return l.spherical, l.kind == LightTypeSpherical
}

// Colour returns the colour of the emitted light
func (l Light) Colour() core.Colour {
	switch l.kind {
	case LightTypeDirectional:
		return l.directional.Colour
	case LightTypeSpherical:
		return l.spherical.Colour
	default:
		panic(invalidType(l.kind))
	}
}

// DirectionFrom returns the unit direction from point toward the light
func (l Light) DirectionFrom(point core.Point) core.Vec3 {
	switch l.kind {
	case LightTypeDirectional:
		return l.directional.DirectionFrom(point)
	case LightTypeSpherical:
		return l.spherical.DirectionFrom(point)
	default:
		panic(invalidType(l.kind))
	}
}

// Intensity returns the light intensity arriving at point
func (l Light) Intensity(point core.Point) float32 {
	switch l.kind {
	case LightTypeDirectional:
		return l.directional.Intensity
	case LightTypeSpherical:
		return l.spherical.IntensityAt(point)
	default:
		panic(invalidType(l.kind))
	}
}

// Distance returns how far the light is from point; +Inf for lights at infinity
func (l Light) Distance(point core.Point) float64 {
	switch l.kind {
	case LightTypeDirectional:
		return math.Inf(1)
	case LightTypeSpherical:
		return l.spherical.Distance(point)
	default:
		panic(invalidType(l.kind))
	}
}

func invalidType(t LightType) string {
	return fmt.Sprintf("lights: invalid light variant %q", t)
}
