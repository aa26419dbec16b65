package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/framecore/internal/engine/billboard"
	"github.com/Faultbox/framecore/internal/engine/gpu/shaders"
	"github.com/Faultbox/framecore/internal/engine/sky"
	"github.com/Faultbox/framecore/internal/engine/texture"
	"github.com/Faultbox/framecore/internal/engine/tint"
	"github.com/Faultbox/framecore/pkg/math"
)

// screenVertexFloats is position (4), uv (2), color (4).
const screenVertexFloats = 10

// Screen draws pre-projected polygons: the billboard list and the sky.
type Screen struct {
	program     uint32
	locOrtho    int32
	locTexture  int32
	locTextured int32

	vao     uint32
	vbo     uint32
	scratch []float32
	ortho   math.Mat4
}

// NewScreen compiles the screen shader and allocates a streaming buffer.
func NewScreen(width, height int) (*Screen, error) {
	program, err := CompileProgram(shaders.ScreenVertexShader, shaders.ScreenFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("screen shader: %w", err)
	}
	s := &Screen{
		program:     program,
		locOrtho:    Uniform(program, "uOrtho"),
		locTexture:  Uniform(program, "uTexture"),
		locTextured: Uniform(program, "uTextured"),
		scratch:     make([]float32, 0, billboard.MaxVertices*screenVertexFloats),
	}
	s.Resize(width, height)

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, billboard.MaxVertices*screenVertexFloats*4, nil, gl.STREAM_DRAW)

	stride := int32(screenVertexFloats * 4)
	gl.VertexAttribPointerWithOffset(0, 4, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	return s, nil
}

// Resize updates the pixel-space projection. Depth in [0, 1] maps to the
// full clip range.
func (s *Screen) Resize(width, height int) {
	s.ortho = math.Ortho(0, float32(width), float32(height), 0, 0, -1)
}

// DrawSky draws the sky polygon. Each vertex is scaled by its RHW so the
// texture is perspective correct. The sky sits on the far plane, so it is
// drawn first with the depth test off.
func (s *Screen) DrawSky(quad [4]sky.Vertex, color uint32, textureID uint32) {
	s.begin()
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)

	r, g, b := channels(color)
	s.scratch = s.scratch[:0]
	for _, v := range quad {
		w := v.RHW
		s.scratch = append(s.scratch, v.X*w, v.Y*w, w, w, v.U, v.V, r, g, b, 1)
	}
	s.draw(textureID, len(quad))
	gl.DepthMask(true)
}

// BeginBillboards sets up blending for a run of DrawBillboard calls. Depth
// writes stay off so overlapping translucent sprites do not cull each other.
func (s *Screen) BeginBillboards() {
	s.begin()
	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
}

// DrawBillboard draws one entry as a fan at its post-projection depth.
func (s *Screen) DrawBillboard(e *billboard.Entry, near, far, aspect float32) {
	setBlend(e.Opacity)
	depth := billboard.DrawDepth(e.Depth, near, far, aspect)

	s.scratch = s.scratch[:0]
	for _, v := range e.Vertices[:e.NumVertices] {
		r, g, b := channels(v.Diffuse)
		s.scratch = append(s.scratch, v.X, v.Y, depth, 1, v.U, v.V, r, g, b, 1)
	}
	s.draw(e.Texture, e.NumVertices)
}

// EndBillboards restores the opaque state.
func (s *Screen) EndBillboards() {
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
}

func (s *Screen) begin() {
	gl.UseProgram(s.program)
	gl.UniformMatrix4fv(s.locOrtho, 1, false, &s.ortho[0])
	gl.Uniform1i(s.locTexture, 0)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
}

func (s *Screen) draw(textureID uint32, n int) {
	if n < 3 {
		return
	}
	textured := int32(0)
	if textureID != 0 {
		textured = 1
	}
	gl.Uniform1i(s.locTextured, textured)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(s.scratch)*4, unsafe.Pointer(&s.scratch[0]))
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(n))
}

func setBlend(op billboard.Opacity) {
	switch op {
	case billboard.Transparent:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	case billboard.Opaque1, billboard.Opaque2, billboard.Opaque3:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
	default:
		gl.Disable(gl.BLEND)
	}
}

func channels(c uint32) (r, g, b float32) {
	_, ri, gi, bi := tint.Unpack(c)
	return float32(ri) / 255, float32(gi) / 255, float32(bi) / 255
}

// Destroy releases all resources.
func (s *Screen) Destroy() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	if s.program != 0 {
		gl.DeleteProgram(s.program)
		s.program = 0
	}
}

// Texture2D uploads a decoded image as a repeating, mipmapped 2D texture.
func Texture2D(img *texture.Image) (uint32, error) {
	if img == nil || len(img.Pixels) < 4*img.Width*img.Height || img.Width == 0 {
		return 0, fmt.Errorf("texture2d: %w", texture.ErrEmpty)
	}
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Width), int32(img.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pixels[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return id, checkError("texture2d")
}

// DeleteTexture frees a texture made by Texture2D.
func DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}
