package geom

import (
	"math"
	"testing"
)

func TestTransform3DMultiplyIdentity(t *testing.T) {
	m := Translate3D(1, 2, 3)
	if got := m.Multiply(Identity3D()); got != m {
		t.Errorf("m * I = %+v, want %+v", got, m)
	}
	if got := Identity3D().Multiply(m); got != m {
		t.Errorf("I * m = %+v, want %+v", got, m)
	}
}

func TestTransform3DTransformPoint(t *testing.T) {
	m := Translate3D(10, 20, 30)
	got := m.TransformPoint(Pt(1, 2))
	want := Vec4(11, 22, 30, 1)
	if got != want {
		t.Errorf("TransformPoint = %+v, want %+v", got, want)
	}
}

func TestTransform3DInverse(t *testing.T) {
	m := Translate3D(3, -4, 5)
	inv := m.Inverse()
	v := Vec4(1, 2, 3, 1)
	back := inv.TransformVector(m.TransformVector(v))
	for i := range 4 {
		if math.Abs(back.V[i]-v.V[i]) > 1e-9 {
			t.Fatalf("inverse round-trip = %+v, want %+v", back, v)
		}
	}
}

func TestTransform3DInverseSingular(t *testing.T) {
	var zero Transform3D
	if got := zero.Inverse(); got != Identity3D() {
		t.Errorf("Inverse of singular = %+v, want identity", got)
	}
}

func TestVector4PerspectiveDivide(t *testing.T) {
	v := Vec4(2, 4, 6, 2)
	want := Vec4(1, 2, 3, 1)
	if got := v.PerspectiveDivide(); got != want {
		t.Errorf("PerspectiveDivide = %+v, want %+v", got, want)
	}

	zeroW := Vec4(1, 2, 3, 0)
	if got := zeroW.PerspectiveDivide(); got != zeroW {
		t.Errorf("PerspectiveDivide with w=0 = %+v, want unchanged", got)
	}
}

func TestPerspectiveTransformPoint2D(t *testing.T) {
	// Identity transform maps NDC [-1,1] onto the window.
	p := NewPerspective(Identity3D(), PtI(100, 50))
	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"center", Pt(0, 0), Pt(50, 25)},
		{"top left NDC", Pt(-1, 1), Pt(0, 0)},
		{"bottom right NDC", Pt(1, -1), Pt(100, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.TransformPoint2D(tt.in)
			if !pointsClose(got, tt.want, 1e-12) {
				t.Errorf("TransformPoint2D(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
