package math

import "github.com/chewxy/math32"

// RotationUnits is the number of rotation units in a full turn.
const RotationUnits = 2048

// RotToRad converts rotation units to radians.
const RotToRad = 2 * math32.Pi / RotationUnits

// WrapRotation folds a rotation into [0, RotationUnits).
func WrapRotation(r int) int {
	r %= RotationUnits
	if r < 0 {
		r += RotationUnits
	}
	return r
}

// SinCos returns the sine and cosine of a rotation given in rotation units.
func SinCos(r int) (sin, cos float32) {
	return math32.Sincos(float32(WrapRotation(r)) * RotToRad)
}

// RoundHalfUp rounds x to the nearest integer, halves rounding up.
func RoundHalfUp(x float32) int {
	return int(math32.Floor(x + 0.5))
}

// ClampInt clamps v into [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
