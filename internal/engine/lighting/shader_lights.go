package lighting

import (
	"github.com/Faultbox/framecore/pkg/math"
)

// MaxShaderLights is the number of point light slots in the terrain shader.
const MaxShaderLights = 20

// torchRadiusPerPower is the torch glow radius per point of buff power.
const torchRadiusPerPower = 1024

// ShaderLightType tells the shader how to treat a slot.
type ShaderLightType float32

// Slot types as uploaded to the shader.
const (
	LightUnused     ShaderLightType = 0
	LightStationary ShaderLightType = 1
	LightMobile     ShaderLightType = 2
	LightTorch      ShaderLightType = 3
)

// ShaderLight is one point light slot for GPU upload.
type ShaderLight struct {
	Type     ShaderLightType
	Position [3]float32
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
	Radius   float32
}

// ShaderLights holds the point light slots for one frame. Slot 0 is always
// the party torch.
type ShaderLights struct {
	Lights [MaxShaderLights]ShaderLight
	Count  int
}

// TorchRadius returns the party torch radius for a torch buff power.
// A power of zero or less means no buff and uses the base radius.
func TorchRadius(power int) float32 {
	if power <= 0 {
		power = 1
	}
	return float32(power) * torchRadiusPerPower
}

// BuildShaderLights fills the shader light slots for a frame. The torch
// radius is zero by day. Mobile lights are taken first, then stationary ones,
// both in stack order until the slots run out.
func BuildShaderLights(w *World, eye math.Vec3, night bool, torchPower int) *ShaderLights {
	sl := &ShaderLights{}

	var radius float32
	if night {
		radius = TorchRadius(torchPower)
	}
	sl.Lights[0] = ShaderLight{
		Type:     LightTorch,
		Position: [3]float32{eye.X, eye.Y, eye.Z},
		Ambient:  [3]float32{0.85, 0.85, 0.85},
		Diffuse:  [3]float32{0.85, 0.85, 0.85},
		Specular: [3]float32{0, 0, 1},
		Radius:   radius,
	}
	sl.Count = 1

	for _, l := range w.Mobile.All() {
		if !sl.add(LightMobile, l.Position, l.Color, l.Radius) {
			return sl
		}
	}
	for _, l := range w.Stationary.All() {
		if !sl.add(LightStationary, l.Position, l.Color, l.Radius) {
			return sl
		}
	}
	return sl
}

func (sl *ShaderLights) add(typ ShaderLightType, pos math.Vec3, color uint32, radius float32) bool {
	if sl.Count >= MaxShaderLights {
		return false
	}
	rgb := [3]float32{
		float32((color>>16)&0xFF) / 255,
		float32((color>>8)&0xFF) / 255,
		float32(color&0xFF) / 255,
	}
	sl.Lights[sl.Count] = ShaderLight{
		Type:     typ,
		Position: [3]float32{pos.X, pos.Y, pos.Z},
		Ambient:  rgb,
		Diffuse:  rgb,
		Specular: rgb,
		Radius:   radius,
	}
	sl.Count++
	return true
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (sl *ShaderLights) GetPositions() []float32 {
	result := make([]float32, MaxShaderLights*3)
	for i := 0; i < sl.Count; i++ {
		copy(result[i*3:], sl.Lights[i].Position[:])
	}
	return result
}

// GetColors returns diffuse colors as a flat float32 slice for GPU upload.
func (sl *ShaderLights) GetColors() []float32 {
	result := make([]float32, MaxShaderLights*3)
	for i := 0; i < sl.Count; i++ {
		copy(result[i*3:], sl.Lights[i].Diffuse[:])
	}
	return result
}

// GetRadii returns radii for GPU upload.
func (sl *ShaderLights) GetRadii() []float32 {
	result := make([]float32, MaxShaderLights)
	for i := 0; i < sl.Count; i++ {
		result[i] = sl.Lights[i].Radius
	}
	return result
}

// GetTypes returns slot types for GPU upload. Unused slots are LightUnused.
func (sl *ShaderLights) GetTypes() []float32 {
	result := make([]float32, MaxShaderLights)
	for i := 0; i < sl.Count; i++ {
		result[i] = float32(sl.Lights[i].Type)
	}
	return result
}
