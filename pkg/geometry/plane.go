package geometry

import "github.com/df07/go-direct-raytracer/pkg/core"

// planeEpsilon is the smallest normal/direction alignment counted as a hit
const planeEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal.
//
// A plane is one-sided: rays only hit it when travelling along its normal,
// so the normal should point away from the viewer. The shading normal is the
// negated stored normal.
type Plane struct {
	Origin core.Point // A point on the plane
	Normal core.Vec3  // Unit normal, not renormalized
	Colour core.Colour
	Albedo float32
}

// NewPlane creates a new plane. The normal is stored as given.
func NewPlane(origin core.Point, normal core.Vec3, colour core.Colour, albedo float32) Plane {
	return Plane{
		Origin: origin,
		Normal: normal,
		Colour: colour,
		Albedo: albedo,
	}
}

// Intersect returns the distance along the ray to the plane
func (p Plane) Intersect(ray core.Ray) (float64, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if denom <= planeEpsilon {
		return 0, false
	}

	distance := p.Origin.Subtract(ray.Origin).Dot(p.Normal) / denom
	if distance < 0 {
		return 0, false
	}
	return distance, true
}

// SurfaceNormal returns the shading normal, which is always the negated
// stored normal regardless of the hit point
func (p Plane) SurfaceNormal(_ core.Point) core.Vec3 {
	return p.Normal.Negate()
}
