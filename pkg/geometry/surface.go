package geometry

import (
	"fmt"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// SurfaceKind identifies which variant a Surface holds
type SurfaceKind uint8

const (
	SphereSurface SurfaceKind = iota + 1
	PlaneSurface
)

// String returns the variant name
func (k SurfaceKind) String() string {
	switch k {
	case SphereSurface:
		return "sphere"
	case PlaneSurface:
		return "plane"
	default:
		return fmt.Sprintf("SurfaceKind(%d)", uint8(k))
	}
}

// Surface is a closed union over the renderable shapes. Exactly one of the
// variant fields is meaningful, selected by Kind. Surfaces are plain values
// so a scene's surface list is a contiguous slice.
type Surface struct {
	kind   SurfaceKind
	sphere Sphere
	plane  Plane
}

// SphereOf wraps a sphere as a Surface
func SphereOf(s Sphere) Surface {
	return Surface{kind: SphereSurface, sphere: s}
}

// PlaneOf wraps a plane as a Surface
func PlaneOf(p Plane) Surface {
	return Surface{kind: PlaneSurface, plane: p}
}

// Kind returns the variant held by the surface
func (s Surface) Kind() SurfaceKind {
	return s.kind
}

// Sphere returns the sphere variant and whether the surface holds one
func (s Surface) Sphere() (Sphere, bool) {
	return s.sphere, s.kind == SphereSurface
}

// Plane returns the plane variant and whether the surface holds one
func (s Surface) Plane() (Plane, bool) {
	return s.plane, s.kind == PlaneSurface
}

// Intersect returns the distance along the ray to the surface
func (s Surface) Intersect(ray core.Ray) (float64, bool) {
	switch s.kind {
	case SphereSurface:
		return s.sphere.Intersect(ray)
	case PlaneSurface:
		return s.plane.Intersect(ray)
	default:
		panic(invalidKind(s.kind))
	}
}

// SurfaceNormal returns the shading normal at a point on the surface
func (s Surface) SurfaceNormal(point core.Point) core.Vec3 {
	switch s.kind {
	case SphereSurface:
		return s.sphere.SurfaceNormal(point)
	case PlaneSurface:
		return s.plane.SurfaceNormal(point)
	default:
		panic(invalidKind(s.kind))
	}
}

// Colour returns the flat colour of the surface
func (s Surface) Colour() core.Colour {
	switch s.kind {
	case SphereSurface:
		return s.sphere.Colour
	case PlaneSurface:
		return s.plane.Colour
	default:
		panic(invalidKind(s.kind))
	}
}

// Albedo returns the fraction of incident light the surface reflects diffusely
func (s Surface) Albedo() float32 {
	switch s.kind {
	case SphereSurface:
		return s.sphere.Albedo
	case PlaneSurface:
		return s.plane.Albedo
	default:
		panic(invalidKind(s.kind))
	}
}

func invalidKind(k SurfaceKind) string {
	return fmt.Sprintf("geometry: invalid surface variant %v", k)
}
