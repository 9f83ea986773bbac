// Package outline provides the path outline representation consumed by
// the tiler: closed polygonal contours produced by flattening curves,
// plus the transform, clip, and dilation passes that condition an
// outline for scanline tiling.
//
// Contours store their points post-flattening, so every segment is a
// straight line and therefore monotone in both axes. PrepareForTiling
// is the final conditioning step before an outline is handed to the
// tiler.
package outline

import (
	"github.com/gogpu/tiler/geom"
)

// Outline is a set of closed contours describing a fillable shape.
type Outline struct {
	contours []Contour
	bounds   geom.Rect
}

// Contour is one closed loop of an outline. Points are connected in
// order, with an implicit closing segment from the last point back to
// the first.
type Contour struct {
	points []geom.Point
	bounds geom.Rect
}

// New creates an empty outline.
func New() *Outline {
	return &Outline{}
}

// NewContour creates a contour from a point loop. The closing segment
// is implicit; do not repeat the first point.
func NewContour(points []geom.Point) Contour {
	c := Contour{points: points}
	c.updateBounds()
	return c
}

// PushContour appends a contour and unions its bounds into the outline
// bounds. Contours with fewer than three points are ignored; they
// cannot enclose area.
func (o *Outline) PushContour(c Contour) {
	if len(c.points) < 3 {
		return
	}
	if len(o.contours) == 0 {
		o.bounds = c.bounds
	} else {
		o.bounds = o.bounds.Union(c.bounds)
	}
	o.contours = append(o.contours, c)
}

// Bounds returns the bounding rectangle of all contours.
func (o *Outline) Bounds() geom.Rect {
	return o.bounds
}

// IsEmpty returns true if the outline has no contours.
func (o *Outline) IsEmpty() bool {
	return len(o.contours) == 0
}

// Contours returns the outline's contours. The slice is owned by the
// outline; callers must not modify it.
func (o *Outline) Contours() []Contour {
	return o.contours
}

// Clone returns a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	out := &Outline{
		contours: make([]Contour, len(o.contours)),
		bounds:   o.bounds,
	}
	for i := range o.contours {
		src := &o.contours[i]
		points := make([]geom.Point, len(src.points))
		copy(points, src.points)
		out.contours[i] = Contour{points: points, bounds: src.bounds}
	}
	return out
}

// Transform applies a 2D affine transform to every point in place.
func (o *Outline) Transform(m geom.Matrix) {
	if m.IsIdentity() {
		return
	}
	for i := range o.contours {
		c := &o.contours[i]
		for j := range c.points {
			c.points[j] = m.TransformPoint(c.points[j])
		}
		c.updateBounds()
	}
	o.updateBounds()
}

// ApplyPerspective projects every point through the perspective map
// into window space.
func (o *Outline) ApplyPerspective(p geom.Perspective) {
	for i := range o.contours {
		c := &o.contours[i]
		for j := range c.points {
			c.points[j] = p.TransformPoint2D(c.points[j])
		}
		c.updateBounds()
	}
	o.updateBounds()
}

// PrepareForTiling conditions the outline for the scanline tiler:
// clips to the effective view box (dilation and perspective division
// may have pushed points outside it) and refreshes bounds. Segments
// are already monotone because contours are polygonal.
func (o *Outline) PrepareForTiling(viewBox geom.Rect) {
	o.ClipAgainstRect(viewBox)
}

// Len returns the number of points in the contour.
func (c *Contour) Len() int {
	return len(c.points)
}

// Point returns the i'th point of the contour.
func (c *Contour) Point(i int) geom.Point {
	return c.points[i]
}

// Segment returns the i'th directed segment of the contour. Segment
// Len()-1 is the implicit closing segment.
func (c *Contour) Segment(i int) geom.LineSegment {
	from := c.points[i]
	to := c.points[(i+1)%len(c.points)]
	return geom.LineSegment{From: from, To: to}
}

// Bounds returns the bounding rectangle of the contour.
func (c *Contour) Bounds() geom.Rect {
	return c.bounds
}

func (c *Contour) updateBounds() {
	if len(c.points) == 0 {
		c.bounds = geom.Rect{}
		return
	}
	b := geom.Rect{Min: c.points[0], Max: c.points[0]}
	for _, p := range c.points[1:] {
		b = b.UnionPoint(p)
	}
	c.bounds = b
}

func (o *Outline) updateBounds() {
	if len(o.contours) == 0 {
		o.bounds = geom.Rect{}
		return
	}
	b := o.contours[0].bounds
	for i := 1; i < len(o.contours); i++ {
		b = b.Union(o.contours[i].bounds)
	}
	o.bounds = b
}
