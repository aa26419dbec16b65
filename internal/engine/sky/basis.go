// Package sky projects the scrolling sky plane onto the screen.
package sky

import (
	"github.com/Faultbox/framecore/internal/engine/camera"
	"github.com/Faultbox/framecore/pkg/math"
)

// Probe vectors used for the sky plane.
var (
	LeftProbe  = [3]float32{1, 0, 0}
	FrontProbe = [3]float32{0, 1, 0}
)

// Basis is the camera-space frame of the sky plane.
//
// Left and Front hold the rotated probes as (lateral, depth, vertical).
// PartyDir is the rotated inverse camera position stored as
// (depth, lateral, vertical); the dot products pair the two layouts
// component by component.
type Basis struct {
	PartyDir math.Vec3
	Left     math.Vec3
	Front    math.Vec3
	LeftDot  float32
	FrontDot float32
}

// ComputeBasis rotates the camera position and the two probes by the camera
// yaw, then by its pitch when the pitch is non-zero.
func ComputeBasis(cam camera.State, left, front [3]float32) Basis {
	sinz, cosz := cam.YawSinCos()
	sinx, cosx := cam.PitchSinCos()
	pitched := cam.Pitch != 0

	px, py, pz := -cam.Position.X, -cam.Position.Y, -cam.Position.Z
	depth := cosz*px + sinz*py
	lateral := cosz*py - sinz*px

	var b Basis
	if pitched {
		b.PartyDir = math.Vec3{X: depth*cosx + pz*sinx, Y: lateral, Z: pz*cosx + depth*sinx}
	} else {
		b.PartyDir = math.Vec3{X: depth, Y: lateral, Z: pz}
	}

	rotate := func(p [3]float32) math.Vec3 {
		d := p[0]*cosz + p[1]*sinz
		v := math.Vec3{X: p[1]*cosz - p[0]*sinz, Y: d, Z: p[2]}
		if pitched {
			v.Y = d*cosx + p[2]*sinx
			v.Z = p[2]*cosx + d*sinx
		}
		return v
	}
	b.Left = rotate(left)
	b.Front = rotate(front)
	b.LeftDot = b.Left.Dot(b.PartyDir)
	b.FrontDot = b.Front.Dot(b.PartyDir)
	return b
}
