package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/lights"
)

// Builder assembles and validates a Scene. Add methods record problems
// instead of failing immediately; Build reports all of them at once.
type Builder struct {
	scene Scene
	errs  []error
}

// NewBuilder starts a scene with the given image size and horizontal field
// of view in degrees
func NewBuilder(width, height int, fov float64) *Builder {
	return &Builder{
		scene: Scene{
			Width:      width,
			Height:     height,
			FOV:        fov,
			ShadowBias: DefaultShadowBias,
		},
	}
}

// ShadowBias overrides DefaultShadowBias
func (b *Builder) ShadowBias(bias float64) *Builder {
	b.scene.ShadowBias = bias
	return b
}

// AddSphere appends a sphere to the surface list
func (b *Builder) AddSphere(center core.Point, radius float64, colour core.Colour, albedo float32) *Builder {
	n := len(b.scene.Surfaces)
	if !center.IsFinite() {
		b.errorf("surface %d: sphere center %v is not finite", n, center)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		b.errorf("surface %d: sphere radius must be positive and finite, got %v", n, radius)
	}
	b.checkMaterial(n, colour, albedo)

	b.scene.Surfaces = append(b.scene.Surfaces, geometry.SphereOf(geometry.NewSphere(center, radius, colour, albedo)))
	return b
}

// AddPlane appends a plane to the surface list. Planes are only visible from
// the side their normal points away from.
func (b *Builder) AddPlane(origin core.Point, normal core.Vec3, colour core.Colour, albedo float32) *Builder {
	n := len(b.scene.Surfaces)
	if !origin.IsFinite() {
		b.errorf("surface %d: plane origin %v is not finite", n, origin)
	}
	if !normal.IsFinite() || normal.LengthSquared() == 0 {
		b.errorf("surface %d: plane normal %v must be finite and non-zero", n, normal)
	}
	b.checkMaterial(n, colour, albedo)

	b.scene.Surfaces = append(b.scene.Surfaces, geometry.PlaneOf(geometry.NewPlane(origin, normal, colour, albedo)))
	return b
}

// AddDirectionalLight appends a light at infinity travelling along direction
func (b *Builder) AddDirectionalLight(direction core.Vec3, colour core.Colour, intensity float32) *Builder {
	n := len(b.scene.Lights)
	if !direction.IsFinite() || direction.LengthSquared() == 0 {
		b.errorf("light %d: direction %v must be finite and non-zero", n, direction)
	}
	b.checkLight(n, colour, intensity)

	b.scene.Lights = append(b.scene.Lights, lights.DirectionalOf(lights.NewDirectional(direction, colour, intensity)))
	return b
}

// AddSphericalLight appends a point light at position
func (b *Builder) AddSphericalLight(position core.Point, colour core.Colour, intensity float32) *Builder {
	n := len(b.scene.Lights)
	if !position.IsFinite() {
		b.errorf("light %d: position %v is not finite", n, position)
	}
	b.checkLight(n, colour, intensity)

	b.scene.Lights = append(b.scene.Lights, lights.SphericalOf(lights.NewSpherical(position, colour, intensity)))
	return b
}

// Build validates the scene and returns it. The builder should not be
// reused afterwards.
func (b *Builder) Build() (*Scene, error) {
	s := b.scene
	errs := append([]error(nil), b.errs...)

	if s.Width <= 0 || s.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size %dx%d must be positive", s.Width, s.Height))
	} else if s.Width <= s.Height {
		errs = append(errs, fmt.Errorf("image width %d must be greater than height %d", s.Width, s.Height))
	}
	if !(s.FOV > 0 && s.FOV < 180) {
		errs = append(errs, fmt.Errorf("field of view must be between 0 and 180 degrees, got %v", s.FOV))
	}
	if !(s.ShadowBias > 0) || math.IsInf(s.ShadowBias, 0) {
		errs = append(errs, fmt.Errorf("shadow bias must be positive and finite, got %v", s.ShadowBias))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid scene: %w", errors.Join(errs...))
	}
	return &s, nil
}

func (b *Builder) checkMaterial(n int, colour core.Colour, albedo float32) {
	if !validColour(colour) {
		b.errorf("surface %d: colour %v must have finite non-negative channels", n, colour)
	}
	if !(albedo > 0 && albedo <= 1) {
		b.errorf("surface %d: albedo must be in (0, 1], got %v", n, albedo)
	}
}

func (b *Builder) checkLight(n int, colour core.Colour, intensity float32) {
	if !validColour(colour) {
		b.errorf("light %d: colour %v must have finite non-negative channels", n, colour)
	}
	if !(intensity >= 0) || math.IsInf(float64(intensity), 0) {
		b.errorf("light %d: intensity must be finite and non-negative, got %v", n, intensity)
	}
}

func (b *Builder) errorf(format string, args ...interface{}) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

func validColour(c core.Colour) bool {
	for _, ch := range []float32{c.R, c.G, c.B} {
		if !(ch >= 0) || math.IsInf(float64(ch), 0) {
			return false
		}
	}
	return true
}
