// Package math provides math types and functions for game development.
package math

import "github.com/chewxy/math32"

// Vec3 is a 3D vector in world units.
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

// Length returns the Euclidean magnitude.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Abs returns the per-axis absolute values.
func (v Vec3) Abs() Vec3 {
	return Vec3{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)}
}

// ApproxLength returns the fast integer length approximation of v.
// See ApproxLength3.
func (v Vec3) ApproxLength() int {
	a := v.Abs()
	return ApproxLength3(int(a.X), int(a.Y), int(a.Z))
}

// ApproxLength3 approximates the length of a vector with non-negative integer
// components. Components are sorted descending and combined as
// x + 11*y/32 + z/4. The result overestimates the Euclidean length by up to
// roughly 9% and underestimates it by at most about 3%.
func ApproxLength3(x, y, z int) int {
	if x < y {
		x, y = y, x
	}
	if x < z {
		x, z = z, x
	}
	if y < z {
		y, z = z, y
	}
	return x + (11*y)>>5 + z>>2
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
