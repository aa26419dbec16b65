package lighting

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/framecore/pkg/math"
)

func TestLightLevelNoLights(t *testing.T) {
	acc := NewAccumulator(NewWorld())

	tests := []struct {
		base int
		want int
	}{
		{10, 10},
		{0, 0},
		{31, 31},
		{-4, 0},
		{40, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, acc.LightLevel(tt.base, 0, math.Vec3{}), "base %d", tt.base)
	}
}

func TestLightLevelStationaryScenario(t *testing.T) {
	w := NewWorld()
	require.True(t, w.Stationary.Add(NewStationaryLight(math.Vec3{}, 1024)))
	acc := NewAccumulator(w)

	// 10 + round(30*512/1024) - 30 = -5, clamped to 0.
	assert.Equal(t, 0, acc.LightLevel(10, 0, math.Vec3{X: 512}))

	// 25 - 15 = 10 stays in range.
	assert.Equal(t, 10, acc.LightLevel(25, 0, math.Vec3{X: 512}))
}

func TestLightLevelAtRadiusContributesNothing(t *testing.T) {
	w := NewWorld()
	w.Mobile.Add(NewMobileLight(math.Vec3{X: 100, Y: 100, Z: 100}, 256))
	acc := NewAccumulator(w)

	assert.Equal(t, 20, acc.LightLevel(20, 0, math.Vec3{X: 100 + 256, Y: 100, Z: 100}))
	assert.Equal(t, 0, contribution(math.Vec3{}, 256, math.Vec3{Y: 256}))
}

func TestLightLevelAtCenterIsBrightest(t *testing.T) {
	assert.Equal(t, -30, contribution(math.Vec3{X: 5}, 800, math.Vec3{X: 5}))
}

func TestLightLevelZeroRadius(t *testing.T) {
	w := NewWorld()
	w.Mobile.Add(NewMobileLight(math.Vec3{}, 0))
	w.Stationary.Add(NewStationaryLight(math.Vec3{}, -50))
	acc := NewAccumulator(w)

	assert.Equal(t, 12, acc.LightLevel(12, 0, math.Vec3{}))
}

func TestLightLevelAxisReject(t *testing.T) {
	w := NewWorld()
	w.Mobile.Add(NewMobileLight(math.Vec3{}, 100))
	acc := NewAccumulator(w)

	// Inside on two axes, outside on the third.
	assert.Equal(t, 15, acc.LightLevel(15, 0, math.Vec3{X: 10, Y: 10, Z: 101}))
}

func TestLightLevelSectorLights(t *testing.T) {
	w := NewWorld()
	w.Indoor = &Indoor{
		Sectors: []Sector{
			{MinAmbient: 4, Lights: []int{0, 1}},
			{MinAmbient: 8, Lights: []int{2}},
		},
		Lights: []SectorLight{
			{Position: math.Vec3{}, Radius: 1000, Color: White},
			{Position: math.Vec3{}, Radius: 1000, Color: White, Attributes: SectorLightInactive},
			{Position: math.Vec3{}, Radius: 1000, Color: White},
		},
	}
	acc := NewAccumulator(w)

	// Light 0 only: round(30*500/1000) - 30 = -15.
	assert.Equal(t, 16, acc.LightLevel(31, 0, math.Vec3{X: 500}))
	// Sector 1 has its own active light.
	assert.Equal(t, 16, acc.LightLevel(31, 1, math.Vec3{X: 500}))
	// Unknown sectors contribute nothing.
	assert.Equal(t, 31, acc.LightLevel(31, 7, math.Vec3{X: 500}))
	assert.Equal(t, 31, acc.LightLevel(31, -1, math.Vec3{X: 500}))
}

func TestLightLevelOutdoorIgnoresSectors(t *testing.T) {
	w := NewWorld()
	acc := NewAccumulator(w)
	assert.False(t, w.IsIndoor())
	assert.Equal(t, 9, acc.LightLevel(9, 0, math.Vec3{}))
}

func TestLightLevelClampProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		w := NewWorld()
		n := rng.Intn(60)
		for i := 0; i < n; i++ {
			pos := math.Vec3{
				X: rng.Float32()*4000 - 2000,
				Y: rng.Float32()*4000 - 2000,
				Z: rng.Float32()*1000 - 500,
			}
			radius := rng.Float32()*3000 - 200
			if i%2 == 0 {
				w.Mobile.Add(NewMobileLight(pos, radius))
			} else {
				w.Stationary.Add(NewStationaryLight(pos, radius))
			}
		}
		acc := NewAccumulator(w)
		base := rng.Intn(80) - 20
		p := math.Vec3{X: rng.Float32()*2000 - 1000, Y: rng.Float32()*2000 - 1000}

		got := acc.LightLevel(base, 0, p)
		require.GreaterOrEqual(t, got, LevelMin)
		require.LessOrEqual(t, got, LevelMax)
	}
}
