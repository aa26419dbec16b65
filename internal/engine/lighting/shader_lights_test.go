package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/framecore/pkg/math"
)

func TestBuildShaderLightsTorchSlot(t *testing.T) {
	w := NewWorld()
	eye := math.Vec3{X: 10, Y: 20, Z: 30}

	day := BuildShaderLights(w, eye, false, 3)
	require.Equal(t, 1, day.Count)
	assert.Equal(t, LightTorch, day.Lights[0].Type)
	assert.Equal(t, float32(0), day.Lights[0].Radius)
	assert.Equal(t, [3]float32{10, 20, 30}, day.Lights[0].Position)

	night := BuildShaderLights(w, eye, true, 3)
	assert.Equal(t, float32(3072), night.Lights[0].Radius)

	noBuff := BuildShaderLights(w, eye, true, 0)
	assert.Equal(t, float32(1024), noBuff.Lights[0].Radius)
}

func TestBuildShaderLightsStackOrder(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 15; i++ {
		w.Mobile.Add(MobileLight{Position: math.Vec3{X: float32(i)}, Radius: 100, Color: 0xFF0000})
	}
	for i := 0; i < 15; i++ {
		w.Stationary.Add(NewStationaryLight(math.Vec3{Y: float32(i)}, 200))
	}

	sl := BuildShaderLights(w, math.Vec3{}, true, 1)
	require.Equal(t, MaxShaderLights, sl.Count)

	// Slots 1..15 are the mobile lights in order, then the first stationary ones.
	for i := 1; i <= 15; i++ {
		assert.Equal(t, LightMobile, sl.Lights[i].Type)
		assert.Equal(t, float32(i-1), sl.Lights[i].Position[0])
		assert.Equal(t, [3]float32{1, 0, 0}, sl.Lights[i].Diffuse)
	}
	for i := 16; i < MaxShaderLights; i++ {
		assert.Equal(t, LightStationary, sl.Lights[i].Type)
		assert.Equal(t, float32(i-16), sl.Lights[i].Position[1])
	}
}

func TestShaderLightsFlatten(t *testing.T) {
	w := NewWorld()
	w.Stationary.Add(NewStationaryLight(math.Vec3{X: 1, Y: 2, Z: 3}, 50))

	sl := BuildShaderLights(w, math.Vec3{}, false, 0)
	pos := sl.GetPositions()
	require.Len(t, pos, MaxShaderLights*3)
	assert.Equal(t, []float32{1, 2, 3}, pos[3:6])

	types := sl.GetTypes()
	assert.Equal(t, float32(LightTorch), types[0])
	assert.Equal(t, float32(LightStationary), types[1])
	assert.Equal(t, float32(LightUnused), types[2])

	assert.Equal(t, float32(50), sl.GetRadii()[1])
	assert.Equal(t, []float32{1, 1, 1}, sl.GetColors()[3:6])
}

func TestSunForTime(t *testing.T) {
	noon := SunForTime(12, 0, false, false)
	assert.InDelta(t, 0.69, noon.Ambient[0], 1e-4)
	assert.InDelta(t, 0.99, noon.Diffuse[0], 1e-4)
	assert.Equal(t, [3]float32{1, 0.8, 0}, noon.Specular)

	midnight := SunForTime(0, 0, true, false)
	assert.InDelta(t, 0.15, midnight.Ambient[0], 1e-4)
	assert.Equal(t, [3]float32{0, 0, 0}, midnight.Diffuse)

	red := SunForTime(12, 0, false, true)
	assert.Equal(t, [3]float32{1, 0, 0}, red.Ambient)
	assert.Equal(t, [3]float32{0, 0, 0}, red.Specular)
}
