package soft3d

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
)

// Vector2 represents a 2D vector.
type Vector2 struct {
	X, Y float64
}

// V2 is a convenience function to create a Vector2.
func V2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// String returns a human readable form of the vector.
func (v Vector2) String() string {
	return fmt.Sprintf("{X: %g Y: %g}", v.X, v.Y)
}

// Add returns the sum of two vectors.
func (v Vector2) Add(w Vector2) Vector2 {
	return Vector2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vector2) Sub(w Vector2) Vector2 {
	return Vector2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Neg returns the negation of the vector.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Scale returns the vector scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Equals reports whether both components are exactly equal.
func (v Vector2) Equals(w Vector2) bool {
	return v.X == w.X && v.Y == w.Y
}

// Length returns the length (magnitude) of the vector.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared length of the vector.
func (v Vector2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vector2) Normalize() Vector2 {
	length := v.Length()
	if length == 0 {
		return v
	}
	inv := 1.0 / length
	return Vector2{X: v.X * inv, Y: v.Y * inv}
}

// Transform applies the 2D linear part of m (no translation).
func (v Vector2) Transform(m Matrix) Vector2 {
	return Vector2{
		X: v.X*m[0] + v.Y*m[4],
		Y: v.X*m[1] + v.Y*m[5],
	}
}

// Vector2Min returns the component-wise minimum of a and b.
func Vector2Min(a, b Vector2) Vector2 {
	return Vector2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// Vector2Max returns the component-wise maximum of a and b.
func Vector2Max(a, b Vector2) Vector2 {
	return Vector2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Distance2 returns the distance between two 2D points.
func Distance2(a, b Vector2) float64 {
	return math.Sqrt(DistanceSquared2(a, b))
}

// DistanceSquared2 returns the squared distance between two 2D points.
func DistanceSquared2(a, b Vector2) float64 {
	x := a.X - b.X
	y := a.Y - b.Y
	return x*x + y*y
}

// Vector3 represents a 3D point or direction.
type Vector3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vector3.
func V3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Zero3 returns the zero vector.
func Zero3() Vector3 {
	return Vector3{}
}

// Up returns the +Y unit vector.
func Up() Vector3 {
	return Vector3{Y: 1}
}

// Vector3FromSlice reads three consecutive values starting at offset.
// It panics if s is too short, like any slice index.
func Vector3FromSlice(s []float64, offset int) Vector3 {
	return Vector3{X: s[offset], Y: s[offset+1], Z: s[offset+2]}
}

// String returns a human readable form of the vector.
func (v Vector3) String() string {
	return fmt.Sprintf("{X: %g Y: %g Z: %g}", v.X, v.Y, v.Z)
}

// Add returns the sum of two vectors.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Neg returns the negation of the vector.
func (v Vector3) Neg() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Scale returns the vector scaled by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Mul returns the component-wise product of two vectors.
func (v Vector3) Mul(w Vector3) Vector3 {
	return Vector3{X: v.X * w.X, Y: v.Y * w.Y, Z: v.Z * w.Z}
}

// Div returns the component-wise quotient of two vectors.
func (v Vector3) Div(w Vector3) Vector3 {
	return Vector3{X: v.X / w.X, Y: v.Y / w.Y, Z: v.Z / w.Z}
}

// Equals reports whether all components are exactly equal.
func (v Vector3) Equals(w Vector3) bool {
	return v.X == w.X && v.Y == w.Y && v.Z == w.Z
}

// Length returns the length (magnitude) of the vector.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared length of the vector.
// This is faster than Length() when you only need to compare magnitudes.
func (v Vector3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	inv := 1.0 / length
	return Vector3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// Dot returns the dot product of two vectors.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Distance returns the distance between two points.
func (v Vector3) Distance(w Vector3) float64 {
	return math.Sqrt(v.DistanceSquared(w))
}

// DistanceSquared returns the squared distance between two points.
func (v Vector3) DistanceSquared(w Vector3) float64 {
	x := v.X - w.X
	y := v.Y - w.Y
	z := v.Z - w.Z
	return x*x + y*y + z*z
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Vec3 converts v to an x/image f64.Vec3.
func (v Vector3) Vec3() f64.Vec3 {
	return f64.Vec3{v.X, v.Y, v.Z}
}

// TransformCoordinates transforms the point v by m.
//
// v is treated as the row vector (x, y, z, 1) and the result is divided by
// the resulting w component. A zero w yields non-finite components.
func TransformCoordinates(v Vector3, m Matrix) Vector3 {
	x := v.X*m[0] + v.Y*m[4] + v.Z*m[8] + m[12]
	y := v.X*m[1] + v.Y*m[5] + v.Z*m[9] + m[13]
	z := v.X*m[2] + v.Y*m[6] + v.Z*m[10] + m[14]
	w := v.X*m[3] + v.Y*m[7] + v.Z*m[11] + m[15]
	return Vector3{X: x / w, Y: y / w, Z: z / w}
}

// TransformNormal transforms the direction v by the upper 3x3 part of m.
// Translation and the perspective divide are not applied.
func TransformNormal(v Vector3, m Matrix) Vector3 {
	return Vector3{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10],
	}
}
