package soft3d

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix represents a 4x4 homogeneous transformation matrix.
// It uses row-major order and the row-vector convention:
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// A point (x, y, z, 1) is multiplied on the left, so m12..m14 hold the
// translation and m3, m7, m11, m15 the projective column.
type Matrix f64.Mat4

// ErrSingularMatrix is returned by TryInvert for a matrix with a zero
// (or vanishing) determinant.
var ErrSingularMatrix = errors.New("soft3d: matrix is singular")

// singularEpsilon is the determinant magnitude below which TryInvert
// reports ErrSingularMatrix.
const singularEpsilon = 1e-12

// MatrixFromValues creates a matrix from its 16 coefficients, row by row.
func MatrixFromValues(
	m11, m12, m13, m14,
	m21, m22, m23, m24,
	m31, m32, m33, m34,
	m41, m42, m43, m44 float64,
) Matrix {
	return Matrix{
		m11, m12, m13, m14,
		m21, m22, m23, m24,
		m31, m32, m33, m34,
		m41, m42, m43, m44,
	}
}

// MatrixFromMat4 converts an x/image f64.Mat4 (also row-major).
func MatrixFromMat4(m f64.Mat4) Matrix {
	return Matrix(m)
}

// IdentityMatrix returns the identity transformation matrix.
func IdentityMatrix() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ZeroMatrix returns a matrix with every coefficient set to zero.
func ZeroMatrix() Matrix {
	return Matrix{}
}

// Mat4 returns m as an x/image f64.Mat4.
func (m Matrix) Mat4() f64.Mat4 {
	return f64.Mat4(m)
}

// ToArray returns a copy of the coefficients in row-major order.
func (m Matrix) ToArray() []float64 {
	out := make([]float64, 16)
	copy(out, m[:])
	return out
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == IdentityMatrix()
}

// Equals reports whether every coefficient is exactly equal.
func (m Matrix) Equals(other Matrix) bool {
	return m == other
}

// ApproxEqual reports whether every coefficient differs by less than eps.
func (m Matrix) ApproxEqual(other Matrix, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) >= eps {
			return false
		}
	}
	return true
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	t1 := m[10]*m[15] - m[11]*m[14]
	t2 := m[9]*m[15] - m[11]*m[13]
	t3 := m[9]*m[14] - m[10]*m[13]
	t4 := m[8]*m[15] - m[11]*m[12]
	t5 := m[8]*m[14] - m[10]*m[12]
	t6 := m[8]*m[13] - m[9]*m[12]
	return m[0]*(m[5]*t1-m[6]*t2+m[7]*t3) -
		m[1]*(m[4]*t1-m[6]*t4+m[7]*t5) +
		m[2]*(m[4]*t2-m[5]*t4+m[7]*t6) -
		m[3]*(m[4]*t3-m[5]*t5+m[6]*t6)
}

// Invert returns the inverse matrix using cofactor expansion.
//
// No singularity check is made: a singular matrix divides by a zero
// determinant and yields non-finite coefficients. Use TryInvert to get an
// error instead.
func (m Matrix) Invert() Matrix {
	l1, l2, l3, l4 := m[0], m[1], m[2], m[3]
	l5, l6, l7, l8 := m[4], m[5], m[6], m[7]
	l9, l10, l11, l12 := m[8], m[9], m[10], m[11]
	l13, l14, l15, l16 := m[12], m[13], m[14], m[15]

	l17 := l11*l16 - l12*l15
	l18 := l10*l16 - l12*l14
	l19 := l10*l15 - l11*l14
	l20 := l9*l16 - l12*l13
	l21 := l9*l15 - l11*l13
	l22 := l9*l14 - l10*l13
	l23 := l6*l17 - l7*l18 + l8*l19
	l24 := -(l5*l17 - l7*l20 + l8*l21)
	l25 := l5*l18 - l6*l20 + l8*l22
	l26 := -(l5*l19 - l6*l21 + l7*l22)
	inv := 1.0 / (l1*l23 + l2*l24 + l3*l25 + l4*l26)

	l28 := l7*l16 - l8*l15
	l29 := l6*l16 - l8*l14
	l30 := l6*l15 - l7*l14
	l31 := l5*l16 - l8*l13
	l32 := l5*l15 - l7*l13
	l33 := l5*l14 - l6*l13
	l34 := l7*l12 - l8*l11
	l35 := l6*l12 - l8*l10
	l36 := l6*l11 - l7*l10
	l37 := l5*l12 - l8*l9
	l38 := l5*l11 - l7*l9
	l39 := l5*l10 - l6*l9

	var r Matrix
	r[0] = l23 * inv
	r[4] = l24 * inv
	r[8] = l25 * inv
	r[12] = l26 * inv
	r[1] = -(l2*l17 - l3*l18 + l4*l19) * inv
	r[5] = (l1*l17 - l3*l20 + l4*l21) * inv
	r[9] = -(l1*l18 - l2*l20 + l4*l22) * inv
	r[13] = (l1*l19 - l2*l21 + l3*l22) * inv
	r[2] = (l2*l28 - l3*l29 + l4*l30) * inv
	r[6] = -(l1*l28 - l3*l31 + l4*l32) * inv
	r[10] = (l1*l29 - l2*l31 + l4*l33) * inv
	r[14] = -(l1*l30 - l2*l32 + l3*l33) * inv
	r[3] = -(l2*l34 - l3*l35 + l4*l36) * inv
	r[7] = (l1*l34 - l3*l37 + l4*l38) * inv
	r[11] = -(l1*l35 - l2*l37 + l4*l39) * inv
	r[15] = (l1*l36 - l2*l38 + l3*l39) * inv
	return r
}

// TryInvert returns the inverse matrix, or ErrSingularMatrix when the
// determinant magnitude is below 1e-12.
func (m Matrix) TryInvert() (Matrix, error) {
	if math.Abs(m.Determinant()) < singularEpsilon {
		return Matrix{}, ErrSingularMatrix
	}
	return m.Invert(), nil
}

// Multiply returns the product m * other.
// With row vectors, the result applies m first and then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		a0, a1, a2, a3 := m[row*4], m[row*4+1], m[row*4+2], m[row*4+3]
		for col := 0; col < 4; col++ {
			r[row*4+col] = a0*other[col] + a1*other[4+col] + a2*other[8+col] + a3*other[12+col]
		}
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	return Transpose(m)
}

// Transpose returns the transpose of m.
func Transpose(m Matrix) Matrix {
	return Matrix{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// RotationX creates a rotation about the X axis (angle in radians).
func RotationX(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY creates a rotation about the Y axis (angle in radians).
func RotationY(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotationZ creates a rotation about the Z axis (angle in radians).
func RotationZ(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RotationAxis creates a rotation of angle radians about an arbitrary axis.
// The axis does not need to be normalized.
func RotationAxis(axis Vector3, angle float64) Matrix {
	s, c := math.Sincos(-angle)
	c1 := 1 - c
	a := axis.Normalize()

	var r Matrix
	r[0] = a.X*a.X*c1 + c
	r[1] = a.X*a.Y*c1 - a.Z*s
	r[2] = a.X*a.Z*c1 + a.Y*s
	r[4] = a.Y*a.X*c1 + a.Z*s
	r[5] = a.Y*a.Y*c1 + c
	r[6] = a.Y*a.Z*c1 - a.X*s
	r[8] = a.Z*a.X*c1 - a.Y*s
	r[9] = a.Z*a.Y*c1 + a.X*s
	r[10] = a.Z*a.Z*c1 + c
	r[15] = 1
	return r
}

// RotationYawPitchRoll composes Rz(roll) · Rx(pitch) · Ry(yaw).
// The order is fixed; reordering changes the resulting orientation.
func RotationYawPitchRoll(yaw, pitch, roll float64) Matrix {
	return RotationZ(roll).Multiply(RotationX(pitch)).Multiply(RotationY(yaw))
}

// Scaling creates a scaling matrix.
func Scaling(x, y, z float64) Matrix {
	return Matrix{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(x, y, z float64) Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// LookAtLH builds a left-handed view matrix looking from eye towards target.
func LookAtLH(eye, target, up Vector3) Matrix {
	zAxis := target.Sub(eye).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis).Normalize()

	ex := -xAxis.Dot(eye)
	ey := -yAxis.Dot(eye)
	ez := -zAxis.Dot(eye)

	return Matrix{
		xAxis.X, yAxis.X, zAxis.X, 0,
		xAxis.Y, yAxis.Y, zAxis.Y, 0,
		xAxis.Z, yAxis.Z, zAxis.Z, 0,
		ex, ey, ez, 1,
	}
}

// PerspectiveLH builds a left-handed perspective projection from the size
// of the view volume at the near plane.
func PerspectiveLH(width, height, znear, zfar float64) Matrix {
	var r Matrix
	r[0] = 2 * znear / width
	r[5] = 2 * znear / height
	r[10] = -zfar / (znear - zfar)
	r[11] = 1
	r[14] = znear * zfar / (znear - zfar)
	return r
}

// PerspectiveFovLH builds a left-handed perspective projection from a
// vertical field of view (radians) and an aspect ratio (width/height).
func PerspectiveFovLH(fov, aspect, znear, zfar float64) Matrix {
	t := 1.0 / math.Tan(fov*0.5)
	var r Matrix
	r[0] = t / aspect
	r[5] = t
	r[10] = -zfar / (znear - zfar)
	r[11] = 1
	r[14] = znear * zfar / (znear - zfar)
	return r
}
