// Package water times the animation of water tiles through the reserved
// water texture layers.
package water

// DefaultSpeed is the animation speed used when a level sets none.
const DefaultSpeed = 30.0

// Animation cycles through Frames texture layers.
type Animation struct {
	Frames int
	Speed  float32
}

// NewAnimation returns an animation over frames layers. A non-positive
// speed uses DefaultSpeed.
func NewAnimation(frames int, speed float32) Animation {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return Animation{Frames: frames, Speed: speed}
}

// Frame returns the layer offset for ticks milliseconds of elapsed time. At
// speed 10 the cycle advances five frames a second.
func (a Animation) Frame(ticks int) int {
	if a.Frames <= 0 || ticks <= 0 {
		return 0
	}
	t := float32(ticks) / 1000 * a.Speed * 0.5
	return int(t) % a.Frames
}
