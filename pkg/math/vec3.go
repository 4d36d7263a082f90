// Package math provides the float32 vector and matrix types the renderer's
// transform and projection code is built on.
package math

import "github.com/chewxy/math32"

// Epsilon is the tolerance used for zero and equality checks.
const Epsilon float32 = 1e-5

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Right returns the +X unit vector.
func Right() Vec3 { return Vec3{1, 0, 0} }

// Up returns the +Y unit vector.
func Up() Vec3 { return Vec3{0, 1, 0} }

// Forward returns the -Z unit vector (the direction an unrotated camera looks).
func Forward() Vec3 { return Vec3{0, 0, -1} }

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / scalar.
func (v Vec3) Div(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// DivVec divides v by other component-wise.
func (v Vec3) DivVec(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// IsZero reports whether every component is within Epsilon of zero.
func (v Vec3) IsZero() bool {
	return IsZero(v.X) && IsZero(v.Y) && IsZero(v.Z)
}

// Normalize returns a unit vector. The zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	if v.IsZero() {
		return Vec3{}
	}
	return v.Div(v.Length())
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// ApproxEqual reports whether v and other differ by less than Epsilon per component.
func (v Vec3) ApproxEqual(other Vec3) bool {
	return ApproxEqual(v.X, other.X) && ApproxEqual(v.Y, other.Y) && ApproxEqual(v.Z, other.Z)
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// XY drops the Z component.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// ApproxEqual reports whether |a-b| < Epsilon.
func ApproxEqual(a, b float32) bool {
	return math32.Abs(a-b) < Epsilon
}

// IsZero reports whether |x| < Epsilon.
func IsZero(x float32) bool {
	return ApproxEqual(x, 0)
}

func isFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
