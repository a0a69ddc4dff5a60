package soft3d

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const matrixEps = 1e-9

// toMGL reinterprets m as an mgl64 matrix. mgl64 is column-major with
// column vectors, so the same 16 floats describe the same transform.
func toMGL(m Matrix) mgl64.Mat4 {
	return mgl64.Mat4(m)
}

// sampleMatrices returns a set of invertible matrices used by property tests.
func sampleMatrices() map[string]Matrix {
	return map[string]Matrix{
		"identity":    IdentityMatrix(),
		"translation": Translation(3, -4, 5),
		"scaling":     Scaling(2, 0.5, -3),
		"rotation x":  RotationX(0.3),
		"rotation y":  RotationY(-1.2),
		"rotation z":  RotationZ(2.1),
		"yaw pitch roll": RotationYawPitchRoll(0.4, -0.7, 1.1).
			Multiply(Translation(1, 2, 3)),
		"view": LookAtLH(V3(0, 0, 10), Zero3(), Up()),
		"projection": PerspectiveFovLH(0.78, 640.0/480.0, 0.01, 1.0),
		"general": MatrixFromValues(
			2, 1, 0, 3,
			0, 1, 4, 1,
			1, 0, 1, 2,
			3, 2, 1, 1,
		),
	}
}

func TestIdentityMatrix(t *testing.T) {
	m := IdentityMatrix()
	if !m.IsIdentity() {
		t.Fatalf("IdentityMatrix().IsIdentity() = false")
	}
	for i, v := range m {
		want := 0.0
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Errorf("IdentityMatrix()[%d] = %v, want %v", i, v, want)
		}
	}
	if ZeroMatrix().IsIdentity() {
		t.Error("ZeroMatrix().IsIdentity() = true")
	}
}

func TestMatrix_MultiplyIdentity(t *testing.T) {
	id := IdentityMatrix()
	for name, m := range sampleMatrices() {
		t.Run(name, func(t *testing.T) {
			if got := m.Multiply(id); !got.Equals(m) {
				t.Errorf("m * I = %v, want %v", got, m)
			}
			if got := id.Multiply(m); !got.Equals(m) {
				t.Errorf("I * m = %v, want %v", got, m)
			}
		})
	}
}

func TestMatrix_InvertRoundTrip(t *testing.T) {
	for name, m := range sampleMatrices() {
		t.Run(name, func(t *testing.T) {
			inv := m.Invert()
			if got := m.Multiply(inv); !got.ApproxEqual(IdentityMatrix(), matrixEps) {
				t.Errorf("m * m^-1 = %v, want identity", got)
			}
			if got := inv.Invert(); !got.ApproxEqual(m, 1e-6) {
				t.Errorf("(m^-1)^-1 = %v, want %v", got, m)
			}
		})
	}
}

func TestMatrix_TransposeInvolution(t *testing.T) {
	for name, m := range sampleMatrices() {
		t.Run(name, func(t *testing.T) {
			if got := Transpose(Transpose(m)); !got.Equals(m) {
				t.Errorf("transpose(transpose(m)) = %v, want %v", got, m)
			}
			if got := m.Transpose(); got != Transpose(m) {
				t.Errorf("method and function Transpose disagree")
			}
		})
	}
}

func TestMatrix_Singular(t *testing.T) {
	singular := Scaling(1, 0, 1)

	if _, err := singular.TryInvert(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("TryInvert() error = %v, want ErrSingularMatrix", err)
	}

	inv := singular.Invert()
	finite := true
	for _, v := range inv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			finite = false
		}
	}
	if finite {
		t.Errorf("Invert() of singular matrix = %v, want non-finite coefficients", inv)
	}

	if _, err := Translation(1, 2, 3).TryInvert(); err != nil {
		t.Errorf("TryInvert() of translation error = %v, want nil", err)
	}
}

func TestMatrix_AgainstMathGL(t *testing.T) {
	ms := sampleMatrices()
	names := make([]string, 0, len(ms))
	for name := range ms {
		names = append(names, name)
	}

	for _, a := range names {
		m := ms[a]
		t.Run(a, func(t *testing.T) {
			if got, want := m.Determinant(), toMGL(m).Det(); math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
				t.Errorf("Determinant() = %v, mgl64 = %v", got, want)
			}
			if got, want := m.Invert(), Matrix(toMGL(m).Inv()); !got.ApproxEqual(want, 1e-6) {
				t.Errorf("Invert() = %v, mgl64 = %v", got, want)
			}
			if got, want := m.Transpose(), Matrix(toMGL(m).Transpose()); !got.Equals(want) {
				t.Errorf("Transpose() = %v, mgl64 = %v", got, want)
			}
			for _, b := range names {
				n := ms[b]
				// Row vectors: m.Multiply(n) applies m first, which is
				// n * m for column vectors.
				got := m.Multiply(n)
				want := Matrix(toMGL(n).Mul4(toMGL(m)))
				if !got.ApproxEqual(want, 1e-9*math.Max(1, maxAbs(want))) {
					t.Errorf("%s.Multiply(%s) = %v, mgl64 = %v", a, b, got, want)
				}
			}
		})
	}
}

func maxAbs(m Matrix) float64 {
	r := 0.0
	for _, v := range m {
		r = math.Max(r, math.Abs(v))
	}
	return r
}

func TestRotation_AgainstMathGL(t *testing.T) {
	for _, angle := range []float64{0, 0.25, math.Pi / 2, -1.3, math.Pi} {
		if got, want := RotationX(angle), Matrix(mgl64.HomogRotate3DX(angle)); !got.ApproxEqual(want, 1e-12) {
			t.Errorf("RotationX(%v) = %v, want %v", angle, got, want)
		}
		if got, want := RotationY(angle), Matrix(mgl64.HomogRotate3DY(angle)); !got.ApproxEqual(want, 1e-12) {
			t.Errorf("RotationY(%v) = %v, want %v", angle, got, want)
		}
		if got, want := RotationZ(angle), Matrix(mgl64.HomogRotate3DZ(angle)); !got.ApproxEqual(want, 1e-12) {
			t.Errorf("RotationZ(%v) = %v, want %v", angle, got, want)
		}
	}
	if got, want := Translation(1, -2, 3), Matrix(mgl64.Translate3D(1, -2, 3)); !got.Equals(want) {
		t.Errorf("Translation() = %v, want %v", got, want)
	}
	if got, want := Scaling(2, 3, 4), Matrix(mgl64.Scale3D(2, 3, 4)); !got.Equals(want) {
		t.Errorf("Scaling() = %v, want %v", got, want)
	}
}

func TestRotationAxis_MatchesPrincipalAxes(t *testing.T) {
	angle := 0.7
	tests := []struct {
		name string
		axis Vector3
		want Matrix
	}{
		{"x", V3(1, 0, 0), RotationX(angle)},
		{"y", V3(0, 1, 0), RotationY(angle)},
		{"z", V3(0, 0, 1), RotationZ(angle)},
		{"unnormalized x", V3(5, 0, 0), RotationX(angle)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RotationAxis(tt.axis, angle); !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("RotationAxis(%v, %v) = %v, want %v", tt.axis, angle, got, tt.want)
			}
		})
	}
}

func TestRotationYawPitchRoll_Order(t *testing.T) {
	yaw, pitch, roll := 0.3, -0.5, 1.2
	want := RotationZ(roll).Multiply(RotationX(pitch)).Multiply(RotationY(yaw))
	if got := RotationYawPitchRoll(yaw, pitch, roll); !got.Equals(want) {
		t.Errorf("RotationYawPitchRoll() = %v, want Rz*Rx*Ry = %v", got, want)
	}

	other := RotationY(yaw).Multiply(RotationX(pitch)).Multiply(RotationZ(roll))
	if RotationYawPitchRoll(yaw, pitch, roll).ApproxEqual(other, 1e-6) {
		t.Error("RotationYawPitchRoll() should not match the reversed composition order")
	}

	// Roll alone turns +X towards +Y.
	p := TransformCoordinates(V3(1, 0, 0), RotationYawPitchRoll(0, 0, math.Pi/2))
	if !approxVec3(p, V3(0, 1, 0), 1e-12) {
		t.Errorf("roll 90deg maps +X to %v, want (0, 1, 0)", p)
	}
}

func TestTranslation_MovesPoints(t *testing.T) {
	m := Translation(1, 2, 3)
	if got := TransformCoordinates(V3(1, 1, 1), m); !got.Equals(V3(2, 3, 4)) {
		t.Errorf("TransformCoordinates() = %v, want (2, 3, 4)", got)
	}
	if got := TransformNormal(V3(1, 1, 1), m); !got.Equals(V3(1, 1, 1)) {
		t.Errorf("TransformNormal() = %v, translation must not apply", got)
	}
}

func TestLookAtLH(t *testing.T) {
	eye := V3(0, 0, 10)
	view := LookAtLH(eye, Zero3(), Up())

	// The eye maps to the origin of view space.
	if got := TransformCoordinates(eye, view); !approxVec3(got, Zero3(), 1e-12) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
	// The target lies straight ahead on +Z at the eye distance.
	if got := TransformCoordinates(Zero3(), view); !approxVec3(got, V3(0, 0, 10), 1e-12) {
		t.Errorf("target in view space = %v, want (0, 0, 10)", got)
	}
	// Up stays up.
	if got := TransformCoordinates(V3(0, 1, 0), view); got.Y <= 0 {
		t.Errorf("up point in view space = %v, want positive Y", got)
	}
}

func TestPerspectiveFovLH_Coefficients(t *testing.T) {
	fov, aspect, znear, zfar := 0.78, 640.0/480.0, 0.01, 1.0
	m := PerspectiveFovLH(fov, aspect, znear, zfar)

	tan := 1 / math.Tan(fov/2)
	want := map[int]float64{
		0:  tan / aspect,
		5:  tan,
		10: -zfar / (znear - zfar),
		11: 1,
		14: znear * zfar / (znear - zfar),
	}
	for i, v := range m {
		w := want[i]
		if math.Abs(v-w) > 1e-12 {
			t.Errorf("m[%d] = %v, want %v", i, v, w)
		}
	}

	// Points on the near and far planes map to depth 0 and 1.
	if z := TransformCoordinates(V3(0, 0, znear), m).Z; math.Abs(z) > 1e-12 {
		t.Errorf("near plane depth = %v, want 0", z)
	}
	if z := TransformCoordinates(V3(0, 0, zfar), m).Z; math.Abs(z-1) > 1e-12 {
		t.Errorf("far plane depth = %v, want 1", z)
	}
}

func TestPerspectiveLH(t *testing.T) {
	m := PerspectiveLH(2, 1, 1, 10)
	if m[0] != 1 || m[5] != 2 || m[11] != 1 || m[15] != 0 {
		t.Errorf("PerspectiveLH() = %v", m)
	}
}

func TestMatrix_ToArrayIsCopy(t *testing.T) {
	m := IdentityMatrix()
	a := m.ToArray()
	a[0] = 42
	if m[0] != 1 {
		t.Error("ToArray() must return a copy")
	}
	if got := MatrixFromMat4(m.Mat4()); got != m {
		t.Errorf("Mat4 round trip = %v, want %v", got, m)
	}
}

func BenchmarkMatrix_Multiply(b *testing.B) {
	m := RotationYawPitchRoll(0.1, 0.2, 0.3)
	n := PerspectiveFovLH(0.78, 1.5, 0.01, 1)
	b.ReportAllocs()
	for b.Loop() {
		_ = m.Multiply(n)
	}
}

func BenchmarkMatrix_Invert(b *testing.B) {
	m := LookAtLH(V3(1, 2, 10), Zero3(), Up())
	b.ReportAllocs()
	for b.Loop() {
		_ = m.Invert()
	}
}
