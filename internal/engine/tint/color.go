// Package tint resolves dimming levels and environment state into packed
// vertex colors.
package tint

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/framecore/pkg/math"
)

// Color layout is 0xAARRGGBB.
const (
	shiftA = 24
	shiftR = 16
	shiftG = 8
)

// Red is the full-intensity red used by the armageddon effect.
const Red uint32 = 0xFFFF0000

// NearWhite is the color of outdoor daylight geometry with no distance.
const NearWhite uint32 = 0xFFF8F8F8

// Pack packs channels into 0xAARRGGBB, clamping each to [0, 255].
func Pack(a, r, g, b int) uint32 {
	return uint32(clampByte(a))<<shiftA |
		uint32(clampByte(r))<<shiftR |
		uint32(clampByte(g))<<shiftG |
		uint32(clampByte(b))
}

// Unpack splits a packed color into channels.
func Unpack(c uint32) (a, r, g, b int) {
	return int(c >> shiftA & 0xFF), int(c >> shiftR & 0xFF), int(c >> shiftG & 0xFF), int(c & 0xFF)
}

// Gray returns an opaque-less gray with v in every color channel.
func Gray(v int) uint32 {
	return Pack(0, v, v, v)
}

// Blend modulates two colors channel by channel.
func Blend(a, b uint32) uint32 {
	aa, ar, ag, ab := Unpack(a)
	ba, br, bg, bb := Unpack(b)
	return Pack(mulChannel(aa, ba), mulChannel(ar, br), mulChannel(ag, bg), mulChannel(ab, bb))
}

// HalfBright halves the color channels and drops alpha.
func HalfBright(c uint32) uint32 {
	return (c >> 1) & 0x7F7F7F
}

func mulChannel(x, y int) int {
	return math.RoundHalfUp(float32(x) / 255 * float32(y) / 255 * 255)
}

// underwater remaps a brightness in [0, 255] to the blue-green water tint.
func underwater(v int) uint32 {
	c := float32(v) / 255
	r := int(math32.Floor(c*16 + 0.5))
	g := int(math32.Floor(c*194 + 0.5))
	b := int(math32.Floor(c*153 + 0.5))
	return Pack(0, r, g, b)
}

func clampByte(v int) int {
	return math.ClampInt(v, 0, 255)
}
