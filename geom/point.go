// Package geom provides the geometry primitives used by the tiler:
// points, rectangles, line segments, 2D affine matrices, and the
// homogeneous 4D types backing the perspective pipeline.
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package geom

import "math"

// Point represents a 2D point or displacement vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// ScaleXY returns the point scaled per-component by q.
func (p Point) ScaleXY(q Point) Point {
	return Point{X: p.X * q.X, Y: p.Y * q.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
// This is the z-component of the 3D cross product with z=0.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Lerp linearly interpolates between p and q at parameter t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Min returns the component-wise minimum of two points.
func (p Point) Min(q Point) Point {
	return Point{X: math.Min(p.X, q.X), Y: math.Min(p.Y, q.Y)}
}

// Max returns the component-wise maximum of two points.
func (p Point) Max(q Point) Point {
	return Point{X: math.Max(p.X, q.X), Y: math.Max(p.Y, q.Y)}
}

// IsZero returns true if both components are exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// PointI represents a 2D point with integer coordinates, used for tile
// grid addressing.
type PointI struct {
	X, Y int
}

// PtI is a convenience function to create a PointI.
func PtI(x, y int) PointI {
	return PointI{X: x, Y: y}
}

// Add returns the sum of two integer points.
func (p PointI) Add(q PointI) PointI {
	return PointI{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two integer points.
func (p PointI) Sub(q PointI) PointI {
	return PointI{X: p.X - q.X, Y: p.Y - q.Y}
}

// ToPoint converts the integer point to floating point.
func (p PointI) ToPoint() Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}
