package tint

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/framecore/internal/engine/lighting"
	"github.com/Faultbox/framecore/pkg/math"
)

// Dimming arithmetic works in steps of one byte channel.
const (
	// StepUnits is the channel value of one dimming level.
	StepUnits = 8
	// MaxStep is the darkest step reachable by distance and fog.
	MaxStep = 216
	// flowStepBonus scales the extra fog of flowing surfaces.
	flowStepBonus = 32
	// zeroDistance is the distance below which daylight geometry is unshaded.
	zeroDistance = 1e-6
)

// Environment is the global state that affects shading.
type Environment struct {
	Armageddon        bool
	Night             bool
	Underwater        bool
	TorchPower        int     // power of the torch buff, 0 when inactive
	FogDensity        float32 // outdoor fog density
	ShadeDistance     float32 // distance at which flowing surfaces get the full bonus
	MaxTerrainDimming int     // level-wide dimming ceiling
}

// DefaultEnvironment returns a clear outdoor day.
func DefaultEnvironment() Environment {
	return Environment{
		ShadeDistance:     8192,
		MaxTerrainDimming: MaxStep / StepUnits,
	}
}

// Billboard is the lighting view of a billboard that overrides the
// computed step with its own ambient lookup.
type Billboard struct {
	SectorID     int
	Position     math.Vec3
	DimmingLevel int
}

// Source resolves tint colors. Resolver implements it.
type Source interface {
	Color(maxDim, minDim int, distance float32, flow bool, bb *Billboard) uint32
}

// Resolver turns dimming levels into packed colors.
type Resolver struct {
	Env    Environment
	lights *lighting.Accumulator
}

// NewResolver creates a resolver reading dynamic lights from acc.
func NewResolver(acc *lighting.Accumulator, env Environment) *Resolver {
	return &Resolver{Env: env, lights: acc}
}

// indoor reports whether the current level is indoor.
func (r *Resolver) indoor() bool {
	return r.lights.World().IsIndoor()
}

// Color returns the packed tint for a surface or sprite. maxDim and minDim are
// dimming levels, distance is the camera-space depth, flow marks flowing
// surfaces (sky, water). A non-nil bb replaces the computed step with the
// billboard's own light level.
func (r *Resolver) Color(maxDim, minDim int, distance float32, flow bool, bb *Billboard) uint32 {
	if r.indoor() {
		s := math.ClampInt(lighting.LevelMax-maxDim, 0, lighting.LevelMax)
		return Gray(StepUnits * s)
	}

	if r.Env.Armageddon {
		return Red
	}

	if r.Env.Night && !r.Env.Underwater {
		return r.nightColor(distance, flow, bb)
	}
	return r.dayColor(maxDim, minDim, distance, flow, bb)
}

func (r *Resolver) nightColor(distance float32, flow bool, bb *Billboard) uint32 {
	radius := lighting.TorchRadius(r.Env.TorchPower)

	step := 0
	switch {
	case flow, distance > radius, distance == 0:
		step = MaxStep
	case distance > 0:
		step = math.RoundHalfUp(distance * MaxStep / radius)
	}

	if bb != nil {
		step = StepUnits * r.BillboardLevel(bb, step>>3)
	}
	if step > MaxStep {
		step = MaxStep
	}
	return Gray(255 - step)
}

func (r *Resolver) dayColor(maxDim, minDim int, distance float32, flow bool, bb *Billboard) uint32 {
	if math32.Abs(distance) < zeroDistance {
		return NearWhite
	}

	base := math.ClampInt(StepUnits*(maxDim-minDim), 0, MaxStep)

	var mult float32 = MaxStep
	if flow && r.Env.ShadeDistance > 0 {
		mult += distance / r.Env.ShadeDistance * flowStepBonus
	}
	step := base + int(math32.Floor(r.Env.FogDensity*mult+0.5))

	if bb != nil {
		step = StepUnits * r.BillboardLevel(bb, step>>3)
	}
	if step > MaxStep {
		step = MaxStep
	}
	if step < base {
		step = base
	}
	if ceiling := StepUnits * r.Env.MaxTerrainDimming; step > ceiling {
		step = ceiling
	}

	if r.Env.Underwater {
		return underwater(255 - step)
	}
	return Gray(255 - step)
}

// BillboardLevel returns the light level of a billboard. Indoors the sector's
// minimum ambient is the starting level; outdoors it is base, or the
// billboard's stored dimming level when base is -1.
func (r *Resolver) BillboardLevel(bb *Billboard, base int) int {
	var level int
	switch {
	case r.indoor():
		level = r.lights.World().Indoor.MinAmbient(bb.SectorID)
	case base == -1:
		level = bb.DimmingLevel
	default:
		level = base
	}
	return r.lights.LightLevel(level, bb.SectorID, bb.Position)
}
