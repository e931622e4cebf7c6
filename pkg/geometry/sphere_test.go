package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

var white = core.NewColour(1, 1, 1)

func TestSphere_Intersect_TowardCenter(t *testing.T) {
	tests := []struct {
		name   string
		center core.Point
		radius float64
		origin core.Point
	}{
		{"in front on axis", core.NewPoint(0, 0, -5), 1, core.Origin()},
		{"large sphere", core.NewPoint(0, 0, -20), 7.5, core.Origin()},
		{"off axis", core.NewPoint(3, -2, 4), 0.5, core.NewPoint(-1, 1, -2)},
		{"tiny sphere far away", core.NewPoint(100, 100, 100), 1e-3, core.NewPoint(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, white, 0.18)
			toCenter := tt.center.Subtract(tt.origin)
			ray := core.NewRay(tt.origin, toCenter.Normalize())

			distance, ok := sphere.Intersect(ray)
			if !ok {
				t.Fatal("Expected hit, got miss")
			}

			expected := toCenter.Length() - tt.radius
			if math.Abs(distance-expected) > 1e-9*math.Max(1, expected) {
				t.Errorf("Expected distance %f, got %f", expected, distance)
			}
		})
	}
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewPoint(0, 0, -5), 1, white, 0.18)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"passes beside", core.NewRay(core.Origin(), core.NewVec3(0, 1, 0))},
		{"just outside radius", core.NewRay(core.NewPoint(0, 1.0001, 0), core.NewVec3(0, 0, -1))},
		{"sphere behind origin", core.NewRay(core.Origin(), core.NewVec3(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if distance, ok := sphere.Intersect(tt.ray); ok {
				t.Errorf("Expected miss, got hit at %f", distance)
			}
		})
	}
}

func TestSphere_Intersect_OriginInsideReturnsNegativeRoot(t *testing.T) {
	// Ray starts at the centre of a radius 2 sphere: roots are -2 and +2.
	// The smaller root is returned, not the exit point.
	sphere := NewSphere(core.NewPoint(0, 0, -5), 2, white, 0.18)
	ray := core.NewRay(core.NewPoint(0, 0, -5), core.NewVec3(0, 0, -1))

	distance, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("Expected hit for ray starting inside sphere")
	}
	if math.Abs(distance-(-2)) > 1e-9 {
		t.Errorf("Expected negative root -2, got %f", distance)
	}
}

func TestSphere_SurfaceNormal(t *testing.T) {
	sphere := NewSphere(core.NewPoint(1, 2, 3), 2, white, 0.18)

	tests := []struct {
		point    core.Point
		expected core.Vec3
	}{
		{core.NewPoint(3, 2, 3), core.NewVec3(1, 0, 0)},
		{core.NewPoint(1, 0, 3), core.NewVec3(0, -1, 0)},
		{core.NewPoint(1, 2, 5), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		normal := sphere.SurfaceNormal(tt.point)
		if normal.Subtract(tt.expected).Length() > 1e-9 {
			t.Errorf("Normal at %v: expected %v, got %v", tt.point, tt.expected, normal)
		}
	}
}
