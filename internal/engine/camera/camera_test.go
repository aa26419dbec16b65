package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/framecore/pkg/math"
)

func TestRotateWrapsYawAndClampsPitch(t *testing.T) {
	s := Default()
	s.Rotate(2040, 0)
	s.Rotate(16, 500)
	assert.Equal(t, 8, s.Yaw)
	assert.Equal(t, MaxPitch, s.Pitch)

	s.Rotate(-16, -1000)
	assert.Equal(t, 2040, s.Yaw)
	assert.Equal(t, -MaxPitch, s.Pitch)
}

func TestMoveFollowsYaw(t *testing.T) {
	s := Default()
	s.Yaw = 512 // facing +Y
	s.Move(100, 0, 10)
	assert.InDelta(t, 0, s.Position.X, 1e-3)
	assert.InDelta(t, 100, s.Position.Y, 1e-3)
	assert.InDelta(t, 10, s.Position.Z, 1e-3)
}

func TestViewPlaneDistance(t *testing.T) {
	// 90 degree fov: half height equals distance.
	assert.InDelta(t, 360, ViewPlaneDistance(1.5707964, 720), 1e-2)
	assert.Equal(t, float32(360), ViewPlaneDistance(0, 720))
}

func TestApplyControls(t *testing.T) {
	s := Default()
	s.Apply(Controls{Forward: 1, Turn: 1}, 0.5)
	assert.Equal(t, TurnSpeed/2, s.Yaw)
	// Rotation happens first, so the step follows the new heading (+Y).
	assert.InDelta(t, 0, s.Position.X, 1e-2)
	assert.InDelta(t, MoveSpeed/2, s.Position.Y, 1e-2)

	s = Default()
	s.Apply(Controls{Up: -1, Fast: true}, 0.25)
	assert.InDelta(t, -MoveSpeed, s.Position.Z, 1e-3)
}

type heldKeys map[Action]bool

func (h heldKeys) Held(a Action) bool { return h[a] }

func TestControlsFrom(t *testing.T) {
	tests := []struct {
		name string
		held heldKeys
		want Controls
	}{
		{"nothing", heldKeys{}, Controls{}},
		{"forward and strafe", heldKeys{MoveForward: true, StrafeLeft: true}, Controls{Forward: 1, Right: -1}},
		{"opposites cancel", heldKeys{MoveForward: true, MoveBack: true, Rise: true, Sink: true}, Controls{}},
		{"turn left looks up", heldKeys{TurnLeft: true, LookUp: true}, Controls{Turn: 1, Look: 1}},
		{"turn right looks down", heldKeys{TurnRight: true, LookDown: true}, Controls{Turn: -1, Look: -1}},
		{"fast sink", heldKeys{Sink: true, Faster: true}, Controls{Up: -1, Fast: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ControlsFrom(tt.held)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, ControlsFrom(heldKeys{Faster: true}).Idle(), "fast alone does not move")
}

func TestApplyIgnoresIdleAndNonPositiveStep(t *testing.T) {
	s := Default()
	s.Apply(Controls{}, 1)
	s.Apply(Controls{Forward: 1}, 0)
	assert.Equal(t, Default(), s)
}

func TestProjectCentersPointAhead(t *testing.T) {
	s := Default()
	s.Aspect = 640.0 / 480.0
	x, y, depth, ok := s.Project(math.Vec3{X: 1000}, 640, 480)
	assert.True(t, ok)
	assert.InDelta(t, 320, x, 1e-2)
	assert.InDelta(t, 240, y, 1e-2)
	assert.InDelta(t, 1000, depth, 1e-1)

	// Up in the world is up on screen, left is left.
	_, yUp, _, _ := s.Project(math.Vec3{X: 1000, Z: 100}, 640, 480)
	assert.Less(t, yUp, y)
	xLeft, _, _, _ := s.Project(math.Vec3{X: 1000, Y: 100}, 640, 480)
	assert.Less(t, xLeft, x)

	_, _, _, ok = s.Project(math.Vec3{X: -1000}, 640, 480)
	assert.False(t, ok)
}
