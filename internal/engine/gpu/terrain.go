package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/framecore/internal/engine/gpu/shaders"
	"github.com/Faultbox/framecore/internal/engine/lighting"
	"github.com/Faultbox/framecore/internal/engine/terrain"
	"github.com/Faultbox/framecore/internal/engine/texture"
	"github.com/Faultbox/framecore/pkg/math"
)

// Terrain owns the terrain texture arrays, vertex buffer and shader.
// It implements terrain.Uploader.
type Terrain struct {
	program uint32

	locViewProj    int32
	locUnits       int32
	locSunDir      int32
	locSunAmbient  int32
	locSunDiffuse  int32
	locLightPos    int32
	locLightColor  int32
	locLightRadius int32
	locLightType   int32
	locWaterFrame  int32

	waterFrame int

	arrays [terrain.MaxUnits]uint32
	dims   [terrain.MaxUnits]int
	vao    uint32
	vbo    uint32
	count  int32
	log    *zap.Logger
}

var _ terrain.Uploader = (*Terrain)(nil)

// NewTerrain compiles the terrain shader. A GL context must be current.
func NewTerrain(log *zap.Logger) (*Terrain, error) {
	if log == nil {
		log = zap.NewNop()
	}
	program, err := CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	return &Terrain{
		program:        program,
		locViewProj:    Uniform(program, "uViewProj"),
		locUnits:       Uniform(program, "uUnits"),
		locSunDir:      Uniform(program, "uSunDir"),
		locSunAmbient:  Uniform(program, "uSunAmbient"),
		locSunDiffuse:  Uniform(program, "uSunDiffuse"),
		locLightPos:    Uniform(program, "uLightPos"),
		locLightColor:  Uniform(program, "uLightColor"),
		locLightRadius: Uniform(program, "uLightRadius"),
		locLightType:   Uniform(program, "uLightType"),
		locWaterFrame:  Uniform(program, "uWaterFrame"),
		log:            log,
	}, nil
}

// AllocArray creates the storage of one texture array.
func (t *Terrain) AllocArray(unit, dim, layers int) error {
	if unit < 0 || unit >= terrain.MaxUnits {
		return fmt.Errorf("unit %d out of range", unit)
	}
	if t.arrays[unit] != 0 {
		gl.DeleteTextures(1, &t.arrays[unit])
	}
	gl.GenTextures(1, &t.arrays[unit])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.arrays[unit])
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8,
		int32(dim), int32(dim), int32(layers),
		0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	t.dims[unit] = dim
	return checkError("alloc texture array")
}

// UploadLayer copies one texture into its layer.
func (t *Terrain) UploadLayer(unit, layer int, img *texture.Image) error {
	if len(img.Pixels) < 4*t.dims[unit]*t.dims[unit] {
		return fmt.Errorf("layer %d: %d bytes for %dpx", layer, len(img.Pixels), t.dims[unit])
	}
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.arrays[unit])
	gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0,
		0, 0, int32(layer),
		int32(t.dims[unit]), int32(t.dims[unit]), 1,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pixels[0]))
	return checkError("upload layer")
}

// CompleteArray sets filtering and builds mipmaps.
func (t *Terrain) CompleteArray(unit int) error {
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.arrays[unit])
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)
	t.log.Debug("texture array ready", zap.Int("unit", unit), zap.Int("dim", t.dims[unit]))
	return checkError("complete texture array")
}

// UploadVertices creates the static vertex buffer.
func (t *Terrain) UploadVertices(verts []terrain.Vertex) error {
	if len(verts) == 0 {
		return nil
	}
	if t.vao == 0 {
		gl.GenVertexArrays(1, &t.vao)
		gl.GenBuffers(1, &t.vbo)
	}
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)

	stride := int32(terrain.VertexFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(stride), unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	// Position, UV, unit+layer, normal, attribs.
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, stride, 7*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(4, 1, gl.FLOAT, false, stride, 10*4)
	gl.EnableVertexAttribArray(4)

	gl.BindVertexArray(0)
	t.count = int32(len(verts))
	return checkError("upload terrain vertices")
}

// SetWaterFrame selects the water animation layer drawn on water tiles.
func (t *Terrain) SetWaterFrame(frame int) {
	t.waterFrame = frame
}

// Render draws the terrain.
func (t *Terrain) Render(viewProj math.Mat4, sunDir math.Vec3, sun lighting.Sun, lights *lighting.ShaderLights) {
	if t.vao == 0 {
		return
	}

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.DEPTH_TEST)

	gl.UseProgram(t.program)
	gl.UniformMatrix4fv(t.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(t.locSunDir, sunDir.X, sunDir.Y, sunDir.Z)
	gl.Uniform3f(t.locSunAmbient, sun.Ambient[0], sun.Ambient[1], sun.Ambient[2])
	gl.Uniform3f(t.locSunDiffuse, sun.Diffuse[0], sun.Diffuse[1], sun.Diffuse[2])
	gl.Uniform1f(t.locWaterFrame, float32(t.waterFrame))

	if lights != nil {
		pos := lights.GetPositions()
		col := lights.GetColors()
		rad := lights.GetRadii()
		typ := lights.GetTypes()
		gl.Uniform3fv(t.locLightPos, lighting.MaxShaderLights, &pos[0])
		gl.Uniform3fv(t.locLightColor, lighting.MaxShaderLights, &col[0])
		gl.Uniform1fv(t.locLightRadius, lighting.MaxShaderLights, &rad[0])
		gl.Uniform1fv(t.locLightType, lighting.MaxShaderLights, &typ[0])
	}

	var samplers [terrain.MaxUnits]int32
	for unit, id := range t.arrays {
		samplers[unit] = int32(unit)
		if id == 0 {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D_ARRAY, id)
	}
	gl.Uniform1iv(t.locUnits, terrain.MaxUnits, &samplers[0])

	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, t.count)
	gl.BindVertexArray(0)
	gl.Disable(gl.CULL_FACE)
}

// Release deletes the texture arrays and the vertex buffer, keeping the
// shader for the next level.
func (t *Terrain) Release() {
	for unit := range t.arrays {
		if t.arrays[unit] != 0 {
			gl.DeleteTextures(1, &t.arrays[unit])
			t.arrays[unit] = 0
			t.dims[unit] = 0
		}
	}
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.vbo != 0 {
		gl.DeleteBuffers(1, &t.vbo)
		t.vbo = 0
	}
	t.count = 0
}

// Destroy releases all resources.
func (t *Terrain) Destroy() {
	t.Release()
	if t.program != 0 {
		gl.DeleteProgram(t.program)
		t.program = 0
	}
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}
