package geom

import "golang.org/x/image/math/f64"

// Vector4 is a point in 3D homogeneous space. The underlying storage is
// an x/image f64.Vec4 in (x, y, z, w) order.
type Vector4 struct {
	V f64.Vec4
}

// Vec4 is a convenience function to create a Vector4.
func Vec4(x, y, z, w float64) Vector4 {
	return Vector4{V: f64.Vec4{x, y, z, w}}
}

// X returns the x component.
func (v Vector4) X() float64 { return v.V[0] }

// Y returns the y component.
func (v Vector4) Y() float64 { return v.V[1] }

// Z returns the z component.
func (v Vector4) Z() float64 { return v.V[2] }

// W returns the w component.
func (v Vector4) W() float64 { return v.V[3] }

// Lerp linearly interpolates between v and other at parameter t.
func (v Vector4) Lerp(other Vector4, t float64) Vector4 {
	var out f64.Vec4
	for i := range out {
		out[i] = v.V[i] + (other.V[i]-v.V[i])*t
	}
	return Vector4{V: out}
}

// PerspectiveDivide returns the vector scaled by 1/w.
// A zero w returns the vector unchanged.
func (v Vector4) PerspectiveDivide() Vector4 {
	w := v.V[3]
	if w == 0 {
		return v
	}
	inv := 1.0 / w
	return Vec4(v.V[0]*inv, v.V[1]*inv, v.V[2]*inv, 1.0)
}

// To2D drops the z and w components.
func (v Vector4) To2D() Point {
	return Point{X: v.V[0], Y: v.V[1]}
}

// Transform3D is a 4x4 transformation matrix over an x/image f64.Mat4
// in row-major order: M[4*r+c] is the element in row r, column c.
type Transform3D struct {
	M f64.Mat4
}

// Identity3D returns the 4x4 identity transform.
func Identity3D() Transform3D {
	return Transform3D{M: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translate3D creates a 3D translation transform.
func Translate3D(x, y, z float64) Transform3D {
	t := Identity3D()
	t.M[3] = x
	t.M[7] = y
	t.M[11] = z
	return t
}

// Multiply multiplies two transforms (t * other).
func (t Transform3D) Multiply(other Transform3D) Transform3D {
	var out f64.Mat4
	for r := range 4 {
		for c := range 4 {
			sum := 0.0
			for k := range 4 {
				sum += t.M[4*r+k] * other.M[4*k+c]
			}
			out[4*r+c] = sum
		}
	}
	return Transform3D{M: out}
}

// TransformVector applies the transform to a homogeneous vector.
func (t Transform3D) TransformVector(v Vector4) Vector4 {
	var out f64.Vec4
	for r := range 4 {
		out[r] = t.M[4*r+0]*v.V[0] + t.M[4*r+1]*v.V[1] +
			t.M[4*r+2]*v.V[2] + t.M[4*r+3]*v.V[3]
	}
	return Vector4{V: out}
}

// TransformPoint lifts a 2D point to (x, y, 0, 1) and applies the
// transform, returning the homogeneous result without dividing.
func (t Transform3D) TransformPoint(p Point) Vector4 {
	return t.TransformVector(Vec4(p.X, p.Y, 0, 1))
}

// Inverse returns the inverse transform, computed by cofactor
// expansion. A singular matrix returns the identity.
func (t Transform3D) Inverse() Transform3D {
	m := t.M
	var inv f64.Mat4

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 {
		return Identity3D()
	}
	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return Transform3D{M: inv}
}

// Perspective combines a 4x4 projection transform with the size of the
// window it projects into. TransformPoint2D maps source-space 2D points
// directly to window space.
type Perspective struct {
	Transform  Transform3D
	WindowSize PointI
}

// NewPerspective creates a perspective from a transform and window size.
func NewPerspective(transform Transform3D, windowSize PointI) Perspective {
	return Perspective{Transform: transform, WindowSize: windowSize}
}

// TransformPoint2D projects a 2D source point through the perspective:
// lift to homogeneous space, transform, divide by w, then map the
// normalized device coordinates to window pixels (y down).
func (p Perspective) TransformPoint2D(pt Point) Point {
	ndc := p.Transform.TransformPoint(pt).PerspectiveDivide()
	return Point{
		X: (ndc.X() + 1) * 0.5 * float64(p.WindowSize.X),
		Y: (1 - ndc.Y()) * 0.5 * float64(p.WindowSize.Y),
	}
}
