package scene

import (
	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Default image size for built-in scenes
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFOV    = 90.0
)

// defaultAlbedo is the mid-grey reflectance used throughout the built-in scenes
const defaultAlbedo = 0.18

// NewDefaultScene creates three coloured spheres over a grey floor in front
// of a sky-blue back wall, lit by a white directional light and a warm point
// light above the scene
func NewDefaultScene(width, height int) (*Scene, error) {
	width, height = sizeOrDefault(width, height)

	return NewBuilder(width, height, DefaultFOV).
		AddSphere(core.NewPoint(0, 0, -5), 1, core.NewColour(0, 0, 1), defaultAlbedo).
		AddSphere(core.NewPoint(-3, 1, -6), 2, core.NewColour(1, 0, 0), defaultAlbedo).
		AddSphere(core.NewPoint(2, 2, -4), 2.25, core.NewColour(0, 1, 0), defaultAlbedo).
		AddPlane(core.NewPoint(0, -2, 0), core.NewVec3(0, -1, 0), core.NewColour(0.2, 0.2, 0.2), defaultAlbedo).
		AddPlane(core.NewPoint(0, 0, -20), core.NewVec3(0, 0, -1), core.NewColour(0.6, 0.8, 1), defaultAlbedo).
		AddDirectionalLight(core.NewVec3(0.25, 0, -2), core.NewColour(1, 1, 1), 20).
		AddSphericalLight(core.NewPoint(-2, 10, -3), core.NewColour(3, 0.8, 0.3), 40000).
		Build()
}

// NewSphereScene creates a single large green sphere with no lights. With
// nothing to light it every pixel renders black.
func NewSphereScene(width, height int) (*Scene, error) {
	width, height = sizeOrDefault(width, height)

	return NewBuilder(width, height, DefaultFOV).
		AddSphere(core.NewPoint(0, 0, -5), 5, core.NewColour(0.4, 1, 0.4), defaultAlbedo).
		Build()
}

// NewShadowScene creates a sphere resting above a floor under a single point
// light so that it casts a hard shadow
func NewShadowScene(width, height int) (*Scene, error) {
	width, height = sizeOrDefault(width, height)

	return NewBuilder(width, height, 60).
		AddSphere(core.NewPoint(0, -0.5, -6), 1.5, core.NewColour(0.9, 0.9, 0.9), 0.6).
		AddPlane(core.NewPoint(0, -2, 0), core.NewVec3(0, -1, 0), core.NewColour(0.8, 0.7, 0.5), 0.6).
		AddSphericalLight(core.NewPoint(0, 6, -6), core.NewColour(1, 1, 1), 8000).
		Build()
}

// NewPlanesScene creates a corner of three walls lit from two sides, with a
// small sphere sitting in the corner
func NewPlanesScene(width, height int) (*Scene, error) {
	width, height = sizeOrDefault(width, height)

	return NewBuilder(width, height, 75).
		AddPlane(core.NewPoint(0, -2, 0), core.NewVec3(0, -1, 0), core.NewColour(0.9, 0.9, 0.9), 0.5).
		AddPlane(core.NewPoint(0, 0, -10), core.NewVec3(0, 0, -1), core.NewColour(0.9, 0.3, 0.3), 0.5).
		AddPlane(core.NewPoint(-4, 0, 0), core.NewVec3(-1, 0, 0), core.NewColour(0.3, 0.3, 0.9), 0.5).
		AddSphere(core.NewPoint(-2.5, -1, -8.5), 1, core.NewColour(1, 1, 0.2), 0.5).
		AddDirectionalLight(core.NewVec3(-1, -1, -1), core.NewColour(1, 1, 1), 4).
		AddSphericalLight(core.NewPoint(2, 3, -4), core.NewColour(1, 0.9, 0.7), 5000).
		Build()
}

func sizeOrDefault(width, height int) (int, int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}
