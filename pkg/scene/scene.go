package scene

import (
	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/lights"
)

// DefaultShadowBias offsets shadow ray origins off the surface they leave
const DefaultShadowBias = 1e-4

// Scene contains all the elements needed for rendering. A scene is built once
// and is read-only while it is being rendered, so it can be shared between
// render workers without locking.
type Scene struct {
	Width      int     // Image width in pixels, must exceed Height
	Height     int     // Image height in pixels
	FOV        float64 // Horizontal field of view in degrees
	Surfaces   []geometry.Surface
	Lights     []lights.Light
	ShadowBias float64
}

// Trace returns the nearest intersection of ray with the scene's surfaces.
// Every surface is tested; there is no acceleration structure.
func (s *Scene) Trace(ray core.Ray) (geometry.Intersection, bool) {
	return geometry.Nearest(s.Surfaces, ray)
}

// Surface returns the surface an intersection refers to
func (s *Scene) Surface(hit geometry.Intersection) geometry.Surface {
	return s.Surfaces[hit.Surface]
}

// AspectRatio returns width divided by height
func (s *Scene) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}

// GetPrimitiveCount returns the number of surfaces in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Surfaces)
}
