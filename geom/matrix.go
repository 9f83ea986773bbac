package geom

import "math"

// Matrix is the 2D affine render transform applied to outlines before
// tiling. The six coefficients form the augmented 2x3 matrix
//
//	| A  B  C |
//	| D  E  F |
//
// mapping a point (x, y) to (A*x + B*y + C, D*x + E*y + F). C and F
// carry the translation; the remaining four are the linear part, which
// is what the tile cache compares when deciding whether cached tiles
// survive a transform change.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform. Builds with an identity
// render transform skip the transform pass entirely.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a transform that moves points by (x, y).
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a transform that scales points per axis. The subpixel
// AA pass composes Scale(3, 1) onto the render transform.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate returns a transform that rotates points by angle radians
// about the origin.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// TransformPoint maps a point through the transform.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector maps a displacement through the linear part of the
// transform, ignoring translation.
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Multiply composes two transforms: the result applies other first,
// then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		D: m.D*other.A + m.E*other.D,
		B: m.A*other.B + m.B*other.E,
		E: m.D*other.B + m.E*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Invert returns the inverse transform. A singular matrix (degenerate
// linear part) yields the identity rather than propagating NaNs into
// the pipeline.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}

	inv := 1.0 / det
	out := Matrix{
		A: inv * m.E, B: inv * -m.B,
		D: inv * -m.D, E: inv * m.A,
	}
	out.C = -(out.A*m.C + out.B*m.F)
	out.F = -(out.D*m.C + out.E*m.F)
	return out
}

// IsIdentity reports whether the transform is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether the linear part is the identity, i.e.
// the transform only moves points. Translation-only deltas are what
// the CacheOnTranslation policy treats as cache hits.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}
