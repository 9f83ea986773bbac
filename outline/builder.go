package outline

import (
	"github.com/gogpu/tiler/geom"
)

// flattenTolerance is the maximum distance, in pixels, between a curve
// and its polygonal approximation.
const flattenTolerance = 0.25

// maxFlattenDepth bounds recursive subdivision for degenerate curves.
const maxFlattenDepth = 16

// Builder accumulates path commands and flattens curves into the
// polygonal contours of an Outline.
//
// Example:
//
//	var b outline.Builder
//	b.MoveTo(geom.Pt(0, 0))
//	b.LineTo(geom.Pt(16, 0))
//	b.QuadTo(geom.Pt(16, 16), geom.Pt(0, 16))
//	b.Close()
//	o := b.Outline()
type Builder struct {
	outline Outline
	current []geom.Point
	start   geom.Point
	open    bool
}

// MoveTo starts a new contour at p, closing any open contour first.
func (b *Builder) MoveTo(p geom.Point) {
	b.endContour()
	b.start = p
	b.current = append(b.current[:0:0], p)
	b.open = true
}

// LineTo appends a straight segment to p.
func (b *Builder) LineTo(p geom.Point) {
	if !b.open {
		b.MoveTo(p)
		return
	}
	b.push(p)
}

// QuadTo appends a quadratic Bezier segment through control point ctrl
// to p, flattened by recursive subdivision.
func (b *Builder) QuadTo(ctrl, p geom.Point) {
	if !b.open {
		b.MoveTo(p)
		return
	}
	b.flattenQuad(b.last(), ctrl, p, 0)
	b.push(p)
}

// CubicTo appends a cubic Bezier segment through control points c1 and
// c2 to p, flattened by recursive subdivision.
func (b *Builder) CubicTo(c1, c2, p geom.Point) {
	if !b.open {
		b.MoveTo(p)
		return
	}
	b.flattenCubic(b.last(), c1, c2, p, 0)
	b.push(p)
}

// Close closes the current contour. Closing is implicit in the contour
// representation, so this just ends the contour.
func (b *Builder) Close() {
	b.endContour()
}

// Outline finishes the path and returns the accumulated outline.
func (b *Builder) Outline() *Outline {
	b.endContour()
	out := b.outline
	b.outline = Outline{}
	return &out
}

func (b *Builder) last() geom.Point {
	return b.current[len(b.current)-1]
}

func (b *Builder) push(p geom.Point) {
	if p == b.last() {
		return
	}
	b.current = append(b.current, p)
}

func (b *Builder) endContour() {
	if b.open {
		// Drop a trailing point that duplicates the start; the closing
		// segment is implicit.
		pts := b.current
		if len(pts) > 1 && pts[len(pts)-1] == b.start {
			pts = pts[:len(pts)-1]
		}
		b.outline.PushContour(NewContour(pts))
	}
	b.current = nil
	b.open = false
}

// flattenQuad subdivides until the control point is within tolerance
// of the chord, emitting intermediate points. The final endpoint is
// pushed by the caller.
func (b *Builder) flattenQuad(p0, p1, p2 geom.Point, depth int) {
	if depth >= maxFlattenDepth || quadIsFlat(p0, p1, p2) {
		return
	}
	// de Casteljau split at t=0.5.
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	b.flattenQuad(p0, q0, mid, depth+1)
	b.push(mid)
	b.flattenQuad(mid, q1, p2, depth+1)
}

// flattenCubic subdivides until both control points are within
// tolerance of the chord.
func (b *Builder) flattenCubic(p0, p1, p2, p3 geom.Point, depth int) {
	if depth >= maxFlattenDepth || cubicIsFlat(p0, p1, p2, p3) {
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	mid := r0.Lerp(r1, 0.5)
	b.flattenCubic(p0, q0, r0, mid, depth+1)
	b.push(mid)
	b.flattenCubic(mid, r1, q2, p3, depth+1)
}

// quadIsFlat reports whether the control point deviates from the chord
// by less than the flattening tolerance.
func quadIsFlat(p0, p1, p2 geom.Point) bool {
	d := chordDistanceSq(p0, p2, p1)
	return d <= flattenTolerance*flattenTolerance
}

func cubicIsFlat(p0, p1, p2, p3 geom.Point) bool {
	t := flattenTolerance * flattenTolerance
	return chordDistanceSq(p0, p3, p1) <= t && chordDistanceSq(p0, p3, p2) <= t
}

// chordDistanceSq returns the squared distance from p to the chord
// a-b, falling back to distance-to-a for a degenerate chord.
func chordDistanceSq(a, b, p geom.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		d := p.Sub(a)
		return d.Dot(d)
	}
	cross := ab.Cross(p.Sub(a))
	return cross * cross / lenSq
}
