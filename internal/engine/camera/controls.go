package camera

// Speeds used by Apply, per second of frame time.
const (
	MoveSpeed  = 2048 // world units
	TurnSpeed  = 1024 // rotation units
	PitchSpeed = 256  // rotation units
)

// Controls is the held-key state for one frame. Each axis is -1, 0 or 1.
type Controls struct {
	Forward int
	Right   int
	Up      int
	Turn    int // positive turns left (counter-clockwise seen from above)
	Look    int // positive looks up
	Fast    bool
}

// Action is a camera command bound to a key.
type Action int

const (
	MoveForward Action = iota
	MoveBack
	StrafeLeft
	StrafeRight
	Rise
	Sink
	TurnLeft
	TurnRight
	LookUp
	LookDown
	Faster
)

// Keys reports which actions are held this frame.
type Keys interface {
	Held(a Action) bool
}

// ControlsFrom folds held actions into Controls. Opposite actions held
// together cancel out.
func ControlsFrom(k Keys) Controls {
	axis := func(neg, pos Action) int {
		v := 0
		if k.Held(neg) {
			v--
		}
		if k.Held(pos) {
			v++
		}
		return v
	}
	return Controls{
		Forward: axis(MoveBack, MoveForward),
		Right:   axis(StrafeLeft, StrafeRight),
		Up:      axis(Sink, Rise),
		Turn:    axis(TurnRight, TurnLeft),
		Look:    axis(LookDown, LookUp),
		Fast:    k.Held(Faster),
	}
}

// Idle reports whether no axis is held.
func (c Controls) Idle() bool {
	return c.Forward == 0 && c.Right == 0 && c.Up == 0 && c.Turn == 0 && c.Look == 0
}

// Apply moves and turns the camera for dt seconds of held controls. Fast
// quadruples the movement speed but not the turn rate.
func (s *State) Apply(c Controls, dt float32) {
	if dt <= 0 || c.Idle() {
		return
	}
	speed := float32(MoveSpeed)
	if c.Fast {
		speed *= 4
	}
	s.Rotate(int(float32(c.Turn*TurnSpeed)*dt), int(float32(c.Look*PitchSpeed)*dt))
	s.Move(float32(c.Forward)*speed*dt, float32(c.Right)*speed*dt, float32(c.Up)*speed*dt)
}
