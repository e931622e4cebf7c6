package renderer

import (
	"image"
	"math"
	"time"

	"github.com/chewxy/math32"

	"github.com/df07/go-direct-raytracer/pkg/core"
	"github.com/df07/go-direct-raytracer/pkg/geometry"
	"github.com/df07/go-direct-raytracer/pkg/scene"
)

// Raytracer computes direct lighting for a scene. It only reads the scene,
// so one Raytracer may be shared by any number of goroutines.
type Raytracer struct {
	scene  *scene.Scene
	camera *Camera
}

// NewRaytracer creates a new raytracer. It panics if the scene is not wider
// than it is tall.
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{
		scene:  s,
		camera: NewCamera(s.Width, s.Height, s.FOV),
	}
}

// Render traces every pixel of the scene in order and returns the frame
func Render(s *scene.Scene) *Frame {
	frame, _ := NewRaytracer(s).Render()
	return frame
}

// Render traces every pixel sequentially
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	start := time.Now()
	frame := NewFrame(rt.scene.Width, rt.scene.Height)
	stats := rt.RenderBounds(frame.Bounds(), frame)
	stats.Duration = time.Since(start)
	return frame, stats
}

// RenderBounds traces the pixels inside bounds, writing only those pixels of
// frame. Disjoint bounds may be rendered concurrently into the same frame.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, frame *Frame) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			frame.Set(x, y, rt.tracePixel(x, y, &stats))
		}
	}

	return stats
}

// PixelColour returns the colour of a single pixel
func (rt *Raytracer) PixelColour(x, y int) core.Colour {
	var stats RenderStats
	return rt.tracePixel(x, y, &stats)
}

func (rt *Raytracer) tracePixel(x, y int, stats *RenderStats) core.Colour {
	ray := rt.camera.GetRay(x, y)

	hit, ok := rt.scene.Trace(ray)
	if !ok {
		return core.Black()
	}
	stats.HitPixels++

	return rt.shade(ray, hit, stats)
}

// Shade returns the directly lit colour of the surface hit by ray
func (rt *Raytracer) Shade(ray core.Ray, hit geometry.Intersection) core.Colour {
	var stats RenderStats
	return rt.shade(ray, hit, &stats)
}

// shade sums the Lambertian contribution of every unoccluded light
func (rt *Raytracer) shade(ray core.Ray, hit geometry.Intersection, stats *RenderStats) core.Colour {
	surface := rt.scene.Surface(hit)
	hitPoint := ray.At(hit.Distance)
	normal := surface.SurfaceNormal(hitPoint)

	// Albedo / π keeps reflected power at or below incident power
	lightReflected := surface.Albedo() / math32.Pi
	surfaceColour := surface.Colour()

	colour := core.Black()
	for _, light := range rt.scene.Lights {
		directionToLight := light.DirectionFrom(hitPoint)

		shadowRay := core.NewRay(hitPoint.Add(normal.Multiply(rt.scene.ShadowBias)), directionToLight)
		stats.ShadowRays++

		// An occluder beyond the light does not cast a shadow
		inLight := true
		if occluder, blocked := rt.scene.Trace(shadowRay); blocked {
			inLight = occluder.Distance > light.Distance(hitPoint)
		}

		var lightIntensity float32
		if inLight {
			lightIntensity = light.Intensity(hitPoint)
		} else {
			stats.OccludedShadowRays++
		}

		lightPower := float32(math.Max(normal.Dot(directionToLight), 0)) * lightIntensity
		lightColour := light.Colour().Scale(lightPower).Scale(lightReflected)
		colour = colour.Add(surfaceColour.Multiply(lightColour))
	}

	return colour.Clamp()
}
