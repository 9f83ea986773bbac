package outline

import (
	"testing"

	"github.com/gogpu/tiler/geom"
)

func TestOutlineTransform(t *testing.T) {
	o := rectOutline(t, geom.Pt(0, 0), geom.Pt(8, 8))
	o.Transform(geom.Translate(10, 20))
	want := geom.Rect{Min: geom.Pt(10, 20), Max: geom.Pt(18, 28)}
	if o.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", o.Bounds(), want)
	}
}

func TestOutlineCloneIsDeep(t *testing.T) {
	o := rectOutline(t, geom.Pt(0, 0), geom.Pt(8, 8))
	clone := o.Clone()
	clone.Transform(geom.Scale(2, 2))

	if o.Bounds().Max != geom.Pt(8, 8) {
		t.Errorf("original mutated: %+v", o.Bounds())
	}
	if clone.Bounds().Max != geom.Pt(16, 16) {
		t.Errorf("clone not transformed: %+v", clone.Bounds())
	}
}

func TestOutlineApplyPerspective(t *testing.T) {
	o := rectOutline(t, geom.Pt(-1, -1), geom.Pt(1, 1))
	p := geom.NewPerspective(geom.Identity3D(), geom.PtI(100, 100))
	o.ApplyPerspective(p)
	// NDC [-1,1] maps to the full window with y flipped.
	want := geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(100, 100)}
	if o.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", o.Bounds(), want)
	}
}

func TestPrepareForTilingClips(t *testing.T) {
	o := rectOutline(t, geom.Pt(-8, -8), geom.Pt(24, 24))
	viewBox := geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 16))
	o.PrepareForTiling(viewBox)
	if o.Bounds() != viewBox {
		t.Errorf("bounds = %+v, want %+v", o.Bounds(), viewBox)
	}
}

func TestSegmentsIncludesClosing(t *testing.T) {
	o := rectOutline(t, geom.Pt(0, 0), geom.Pt(8, 8))
	var segments []geom.LineSegment
	for s := range o.Segments() {
		segments = append(segments, s)
	}
	if len(segments) != 4 {
		t.Fatalf("segments = %d, want 4", len(segments))
	}
	last := segments[len(segments)-1]
	if last.To != segments[0].From {
		t.Errorf("closing segment ends at %v, want %v", last.To, segments[0].From)
	}
}

func TestTransformedSegmentsLazy(t *testing.T) {
	o := rectOutline(t, geom.Pt(0, 0), geom.Pt(8, 8))
	m := geom.Translate(100, 0)
	for s := range o.TransformedSegments(m) {
		if s.From.X < 100 || s.To.X < 100 {
			t.Fatalf("segment %+v not transformed", s)
		}
	}
	// The outline itself is untouched.
	if o.Bounds().Min != geom.Pt(0, 0) {
		t.Errorf("outline mutated: %+v", o.Bounds())
	}
}
