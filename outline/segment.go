package outline

import (
	"iter"

	"github.com/gogpu/tiler/geom"
)

// Segments returns an iterator over every directed segment of the
// outline, contour by contour, including each contour's implicit
// closing segment.
func (o *Outline) Segments() iter.Seq[geom.LineSegment] {
	return func(yield func(geom.LineSegment) bool) {
		for i := range o.contours {
			c := &o.contours[i]
			for j := range c.points {
				if !yield(c.Segment(j)) {
					return
				}
			}
		}
	}
}

// TransformedSegments returns a lazy iterator that maps each segment
// through a 2D affine transform as it is produced, without
// materializing a transformed outline.
func (o *Outline) TransformedSegments(m geom.Matrix) iter.Seq[geom.LineSegment] {
	return func(yield func(geom.LineSegment) bool) {
		for s := range o.Segments() {
			t := geom.LineSegment{
				From: m.TransformPoint(s.From),
				To:   m.TransformPoint(s.To),
			}
			if !yield(t) {
				return
			}
		}
	}
}

// PerspectiveSegments returns a lazy iterator that projects each
// segment through a perspective map as it is produced.
func (o *Outline) PerspectiveSegments(p geom.Perspective) iter.Seq[geom.LineSegment] {
	return func(yield func(geom.LineSegment) bool) {
		for s := range o.Segments() {
			t := geom.LineSegment{
				From: p.TransformPoint2D(s.From),
				To:   p.TransformPoint2D(s.To),
			}
			if !yield(t) {
				return
			}
		}
	}
}
