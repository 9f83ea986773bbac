package outline

import (
	"testing"

	"github.com/gogpu/tiler/geom"
)

func rectOutline(t *testing.T, min, max geom.Point) *Outline {
	t.Helper()
	var b Builder
	b.MoveTo(min)
	b.LineTo(geom.Pt(max.X, min.Y))
	b.LineTo(max)
	b.LineTo(geom.Pt(min.X, max.Y))
	b.Close()
	return b.Outline()
}

func TestClipAgainstRect(t *testing.T) {
	tests := []struct {
		name       string
		min, max   geom.Point
		clip       geom.Rect
		wantEmpty  bool
		wantBounds geom.Rect
	}{
		{
			"fully inside",
			geom.Pt(2, 2), geom.Pt(8, 8),
			geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 16)),
			false,
			geom.Rect{Min: geom.Pt(2, 2), Max: geom.Pt(8, 8)},
		},
		{
			"partially outside",
			geom.Pt(-8, -8), geom.Pt(8, 8),
			geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 16)),
			false,
			geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(8, 8)},
		},
		{
			"fully outside",
			geom.Pt(20, 20), geom.Pt(30, 30),
			geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 16)),
			true,
			geom.Rect{},
		},
		{
			"exactly the clip rect",
			geom.Pt(0, 0), geom.Pt(16, 16),
			geom.NewRect(geom.Pt(0, 0), geom.Pt(16, 16)),
			false,
			geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(16, 16)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := rectOutline(t, tt.min, tt.max)
			o.ClipAgainstRect(tt.clip)
			if got := o.IsEmpty(); got != tt.wantEmpty {
				t.Fatalf("IsEmpty = %v, want %v", got, tt.wantEmpty)
			}
			if !tt.wantEmpty && o.Bounds() != tt.wantBounds {
				t.Errorf("bounds = %+v, want %+v", o.Bounds(), tt.wantBounds)
			}
		})
	}
}

func TestClipAgainstPolygon(t *testing.T) {
	// Clip a big square against a triangle covering its left half.
	o := rectOutline(t, geom.Pt(0, 0), geom.Pt(16, 16))
	polygon := []geom.Point{geom.Pt(0, 0), geom.Pt(16, 0), geom.Pt(0, 16)}
	o.ClipAgainstPolygon(polygon)

	if o.IsEmpty() {
		t.Fatal("clipped outline is empty")
	}
	b := o.Bounds()
	want := geom.Rect{Min: geom.Pt(0, 0), Max: geom.Pt(16, 16)}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	// The lower-right half must be gone: no point with x+y
	// significantly beyond the hypotenuse.
	for _, c := range o.Contours() {
		for i := range c.Len() {
			p := c.Point(i)
			if p.X+p.Y > 16+1e-9 {
				t.Errorf("point %v survived outside the clip triangle", p)
			}
		}
	}
}

func TestClipAgainstPolygonOrientationInsensitive(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		polygon := []geom.Point{geom.Pt(0, 0), geom.Pt(16, 0), geom.Pt(16, 16), geom.Pt(0, 16)}
		if reversed {
			for i, j := 0, len(polygon)-1; i < j; i, j = i+1, j-1 {
				polygon[i], polygon[j] = polygon[j], polygon[i]
			}
		}
		o := rectOutline(t, geom.Pt(4, 4), geom.Pt(12, 12))
		o.ClipAgainstPolygon(polygon)
		if o.IsEmpty() {
			t.Errorf("reversed=%v: inner square clipped away", reversed)
		}
	}
}

func TestClipAgainstEmptyPolygon(t *testing.T) {
	o := rectOutline(t, geom.Pt(0, 0), geom.Pt(16, 16))
	o.ClipAgainstPolygon(nil)
	if !o.IsEmpty() {
		t.Error("outline survived an empty clip polygon")
	}
}

func TestIsOutsidePolygon(t *testing.T) {
	polygon := []geom.Point{geom.Pt(0, 0), geom.Pt(16, 0), geom.Pt(16, 16), geom.Pt(0, 16)}
	tests := []struct {
		name     string
		min, max geom.Point
		want     bool
	}{
		{"inside", geom.Pt(4, 4), geom.Pt(8, 8), false},
		{"overlapping", geom.Pt(12, 12), geom.Pt(24, 24), false},
		{"outside right", geom.Pt(20, 0), geom.Pt(30, 16), true},
		{"outside diagonal", geom.Pt(17, 17), geom.Pt(20, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := rectOutline(t, tt.min, tt.max)
			if got := o.IsOutsidePolygon(polygon); got != tt.want {
				t.Errorf("IsOutsidePolygon = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("empty polygon contains nothing", func(t *testing.T) {
		o := rectOutline(t, geom.Pt(0, 0), geom.Pt(1, 1))
		if !o.IsOutsidePolygon(nil) {
			t.Error("IsOutsidePolygon(nil) = false, want true")
		}
	})
}

func TestClipPolygon4D(t *testing.T) {
	t.Run("inside volume unchanged", func(t *testing.T) {
		quad := []geom.Vector4{
			geom.Vec4(-0.5, -0.5, 0, 1),
			geom.Vec4(0.5, -0.5, 0, 1),
			geom.Vec4(0.5, 0.5, 0, 1),
			geom.Vec4(-0.5, 0.5, 0, 1),
		}
		got := ClipPolygon4D(quad)
		if len(got) != 4 {
			t.Fatalf("clipped to %d points, want 4", len(got))
		}
	})

	t.Run("behind near plane clipped away", func(t *testing.T) {
		quad := []geom.Vector4{
			geom.Vec4(0, 0, 0, -1),
			geom.Vec4(16, 0, 0, -1),
			geom.Vec4(16, 16, 0, -1),
			geom.Vec4(0, 16, 0, -1),
		}
		if got := ClipPolygon4D(quad); got != nil {
			t.Errorf("clipped = %v, want nil", got)
		}
	})

	t.Run("straddling plane is cut", func(t *testing.T) {
		quad := []geom.Vector4{
			geom.Vec4(-2, 0, 0, 1),
			geom.Vec4(0.5, -0.5, 0, 1),
			geom.Vec4(0.5, 0.5, 0, 1),
		}
		got := ClipPolygon4D(quad)
		if got == nil {
			t.Fatal("clipped to nil, want cut polygon")
		}
		for _, v := range got {
			if v.X() < -v.W()-1e-9 {
				t.Errorf("point %v outside x >= -w", v)
			}
		}
	})
}
