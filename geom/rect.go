package geom

import "math"

// Rect represents an axis-aligned rectangle as min and max corners.
// The zero Rect is the empty rectangle at the origin.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from an origin and a size.
func NewRect(origin, size Point) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

// RectFromPoints creates a rectangle spanning two arbitrary corners.
func RectFromPoints(p, q Point) Rect {
	return Rect{Min: p.Min(q), Max: p.Max(q)}
}

// Origin returns the upper-left corner.
func (r Rect) Origin() Point {
	return r.Min
}

// Size returns the width and height as a Point.
func (r Rect) Size() Point {
	return r.Max.Sub(r.Min)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// UpperRight returns the upper-right corner.
func (r Rect) UpperRight() Point {
	return Point{X: r.Max.X, Y: r.Min.Y}
}

// LowerLeft returns the lower-left corner.
func (r Rect) LowerLeft() Point {
	return Point{X: r.Min.X, Y: r.Max.Y}
}

// LowerRight returns the lower-right corner.
func (r Rect) LowerRight() Point {
	return r.Max
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle is the identity for Union.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{Min: r.Min.Min(other.Min), Max: r.Max.Max(other.Max)}
}

// UnionPoint returns the smallest rectangle containing r and p.
func (r Rect) UnionPoint(p Point) Rect {
	if r.IsEmpty() {
		return Rect{Min: p, Max: p}
	}
	return Rect{Min: r.Min.Min(p), Max: r.Max.Max(p)}
}

// Intersect returns the overlapping region of two rectangles, or the
// empty rectangle if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{Min: r.Min.Max(other.Min), Max: r.Max.Min(other.Max)}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Intersects returns true if the two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Contains returns true if p lies inside r (inclusive of the min edges,
// exclusive of the max edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ScaleXY returns the rectangle with both corners scaled per-component.
func (r Rect) ScaleXY(s Point) Rect {
	return Rect{Min: r.Min.ScaleXY(s), Max: r.Max.ScaleXY(s)}
}

// Dilate returns the rectangle expanded by amount on every side.
func (r Rect) Dilate(amount Point) Rect {
	return Rect{Min: r.Min.Sub(amount), Max: r.Max.Add(amount)}
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() RectI {
	return RectI{
		Min: PointI{X: int(math.Floor(r.Min.X)), Y: int(math.Floor(r.Min.Y))},
		Max: PointI{X: int(math.Ceil(r.Max.X)), Y: int(math.Ceil(r.Max.Y))},
	}
}

// RectI represents an axis-aligned rectangle with integer coordinates,
// used for tile grid extents.
type RectI struct {
	Min, Max PointI
}

// NewRectI creates an integer rectangle from an origin and a size.
func NewRectI(origin, size PointI) RectI {
	return RectI{Min: origin, Max: origin.Add(size)}
}

// Size returns the width and height as a PointI.
func (r RectI) Size() PointI {
	return r.Max.Sub(r.Min)
}

// Width returns the width of the rectangle.
func (r RectI) Width() int {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r RectI) Height() int {
	return r.Max.Y - r.Min.Y
}

// Area returns Width*Height, or 0 for a degenerate rectangle.
func (r RectI) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has no area.
func (r RectI) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains returns true if p lies inside r (min-inclusive, max-exclusive).
func (r RectI) Contains(p PointI) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ToRect converts the integer rectangle to floating point.
func (r RectI) ToRect() Rect {
	return Rect{Min: r.Min.ToPoint(), Max: r.Max.ToPoint()}
}
