package core

// Point represents a position in 3D space. Points and vectors are distinct
// types: a point can be displaced by a vector, and the difference of two
// points is a vector, but two points cannot be added.
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Origin returns the point at (0, 0, 0)
func Origin() Point {
	return Point{}
}

// Add returns the point displaced by a vector
func (p Point) Add(v Vec3) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// SubtractVec returns the point displaced by the negation of a vector
func (p Point) SubtractVec(v Vec3) Point {
	return Point{p.X - v.X, p.Y - v.Y, p.Z - v.Z}
}

// Subtract returns the vector from other to p
func (p Point) Subtract(other Point) Vec3 {
	return Vec3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// IsFinite reports whether every coordinate is a finite number
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}
