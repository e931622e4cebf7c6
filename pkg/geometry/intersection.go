package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// Intersection records the nearest hit of a ray. Surface is an index into the
// surface list that was queried rather than a pointer, so results carry no
// reference to scene storage.
type Intersection struct {
	Distance float64
	Surface  int
}

// NewIntersection creates an intersection record. A non-finite distance means
// the intersection math is broken and panics.
func NewIntersection(distance float64, surface int) Intersection {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		panic(fmt.Sprintf("geometry: intersection must have a finite distance, got %v", distance))
	}
	return Intersection{Distance: distance, Surface: surface}
}

// Nearest scans surfaces in order and returns the hit with the smallest
// distance. Ties keep the earliest surface.
func Nearest(surfaces []Surface, ray core.Ray) (Intersection, bool) {
	var nearest Intersection
	found := false

	for i := range surfaces {
		distance, ok := surfaces[i].Intersect(ray)
		if !ok {
			continue
		}
		hit := NewIntersection(distance, i)
		if !found || hit.Distance < nearest.Distance {
			nearest = hit
			found = true
		}
	}

	return nearest, found
}
