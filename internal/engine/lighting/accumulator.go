package lighting

import (
	"github.com/Faultbox/framecore/pkg/math"
)

// falloffSteps is the brightening of a light at distance zero.
const falloffSteps = 30

// Accumulator sums light contributions into a brightness level.
type Accumulator struct {
	world *World
}

// NewAccumulator creates an accumulator reading from w.
func NewAccumulator(w *World) *Accumulator {
	return &Accumulator{world: w}
}

// World returns the light world the accumulator reads.
func (a *Accumulator) World() *World {
	return a.world
}

// LightLevel returns the brightness level at p, starting from base and
// brightening by every light in range. On indoor levels the lights of
// sectorID are included. The result is always in [LevelMin, LevelMax].
func (a *Accumulator) LightLevel(base, sectorID int, p math.Vec3) int {
	level := base
	w := a.world

	for _, l := range w.Mobile.All() {
		level += contribution(l.Position, l.Radius, p)
	}

	if w.IsIndoor() {
		for _, idx := range w.Indoor.SectorLights(sectorID) {
			if idx < 0 || idx >= len(w.Indoor.Lights) {
				continue
			}
			l := w.Indoor.Lights[idx]
			if l.Inactive() {
				continue
			}
			level += contribution(l.Position, l.Radius, p)
		}
	}

	for _, l := range w.Stationary.All() {
		level += contribution(l.Position, l.Radius, p)
	}

	return math.ClampInt(level, LevelMin, LevelMax)
}

// contribution returns the level change caused by one light: -30 at the light,
// rising linearly to 0 at its radius, 0 outside it.
func contribution(pos math.Vec3, radius float32, p math.Vec3) int {
	if radius <= 0 {
		return 0
	}

	d := pos.Sub(p).Abs()
	if d.X > radius || d.Y > radius || d.Z > radius {
		return 0
	}

	dist := float32(math.ApproxLength3(int(d.X), int(d.Y), int(d.Z)))
	if dist >= radius {
		return 0
	}
	return math.RoundHalfUp(falloffSteps*dist/radius) - falloffSteps
}
