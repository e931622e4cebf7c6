package geometry

import (
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Sphere represents a sphere with a flat colour and diffuse albedo
type Sphere struct {
	Center core.Point
	Radius float64
	Colour core.Colour
	Albedo float32
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, colour core.Colour, albedo float32) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
		Colour: colour,
		Albedo: albedo,
	}
}

// Intersect returns the distance along the ray to the sphere.
//
// The ray direction must be unit length. The smaller root is returned even
// when it is negative, which happens when the ray starts inside the sphere;
// only a sphere lying entirely behind the origin is reported as a miss.
func (s Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Project the origin-to-center vector onto the ray
	l := s.Center.Subtract(ray.Origin)
	adj := l.Dot(ray.Direction)

	// Squared distance from the center to the ray's line
	d2 := l.Dot(l) - adj*adj
	radius2 := s.Radius * s.Radius
	if d2 > radius2 {
		return 0, false
	}

	thc := math.Sqrt(radius2 - d2)
	t0 := adj - thc
	t1 := adj + thc

	if t0 < 0 && t1 < 0 {
		return 0, false
	}

	return math.Min(t0, t1), true
}

// SurfaceNormal returns the outward unit normal at a point on the sphere
func (s Sphere) SurfaceNormal(point core.Point) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}
