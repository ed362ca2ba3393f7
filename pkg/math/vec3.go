// Package math provides the 3D math types used across vitrine: float32
// vectors, quaternions, column-major matrices, rigid poses and axis-aligned
// bounding boxes.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
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
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

// Min returns the component-wise minimum of v and other.
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{
		min(v.X, other.X),
		min(v.Y, other.Y),
		min(v.Z, other.Z),
	}
}

// Max returns the component-wise maximum of v and other.
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{
		max(v.X, other.X),
		max(v.Y, other.Y),
		max(v.Z, other.Z),
	}
}

// IsFinite reports whether every component is a finite number.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}
