// Package camera holds the per-frame camera state read by the sky projector
// and billboard placement.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/framecore/pkg/math"
)

// MaxPitch limits looking up or down, in rotation units.
const MaxPitch = 128

// State is the camera for one frame. Yaw and pitch are in rotation units
// (2048 per full turn). Yaw 0 faces +X, yaw 512 faces +Y.
type State struct {
	Position math.Vec3
	Yaw      int
	Pitch    int

	FOV    float32 // vertical field of view in radians
	Aspect float32 // width / height
	Near   float32
	Far    float32

	// ViewPlaneDist is the distance from the eye to the screen plane in pixels.
	ViewPlaneDist float32
}

// Default returns a camera at the origin facing +X with outdoor clip planes.
func Default() State {
	s := State{
		FOV:    math32.Pi / 3,
		Aspect: 16.0 / 9.0,
		Near:   4,
		Far:    16384,
	}
	s.ViewPlaneDist = ViewPlaneDistance(s.FOV, 720)
	return s
}

// ViewPlaneDistance returns the screen-plane distance for a vertical field of
// view and a screen height in pixels.
func ViewPlaneDistance(fov, screenHeight float32) float32 {
	t := math32.Tan(fov / 2)
	if t <= 0 {
		return screenHeight / 2
	}
	return screenHeight / 2 / t
}

// YawSinCos returns the sine and cosine of the yaw.
func (s State) YawSinCos() (sin, cos float32) {
	return math.SinCos(s.Yaw)
}

// PitchSinCos returns the sine and cosine of the pitch.
func (s State) PitchSinCos() (sin, cos float32) {
	return math.SinCos(s.Pitch)
}

// Rotate turns the camera. Yaw wraps around, pitch is clamped.
func (s *State) Rotate(dYaw, dPitch int) {
	s.Yaw = math.WrapRotation(s.Yaw + dYaw)
	s.Pitch = math.ClampInt(s.Pitch+dPitch, -MaxPitch, MaxPitch)
}

// Move translates the camera along its yaw: forward, strafe right, and up.
func (s *State) Move(forward, right, up float32) {
	sin, cos := s.YawSinCos()
	s.Position.X += cos*forward + sin*right
	s.Position.Y += sin*forward - cos*right
	s.Position.Z += up
}

// ViewProj returns the combined projection and view matrix.
func (s State) ViewProj() math.Mat4 {
	proj := math.Perspective(s.FOV, s.Aspect, s.Near, s.Far)
	view := math.ViewYawPitch(s.Position, s.Yaw, s.Pitch)
	return proj.Mul(view)
}

// Project maps a world point to pixel coordinates on a width x height
// screen (y down) and returns its camera-space depth. ok is false for
// points at or behind the near plane.
func (s State) Project(p math.Vec3, width, height float32) (x, y, depth float32, ok bool) {
	cx, cy, _, cw := s.ViewProj().Transform(p.X, p.Y, p.Z, 1)
	if cw <= s.Near {
		return 0, 0, cw, false
	}
	x = (cx/cw*0.5 + 0.5) * width
	y = (0.5 - cy/cw*0.5) * height
	return x, y, cw, true
}
