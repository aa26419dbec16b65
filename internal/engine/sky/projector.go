package sky

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/framecore/internal/engine/camera"
	"github.com/Faultbox/framecore/internal/engine/lighting"
	"github.com/Faultbox/framecore/internal/engine/tint"
	"github.com/Faultbox/framecore/pkg/math"
)

const (
	// pitchBias tilts the sky plane, in rotation units.
	pitchBias = 16
	// planeHeight is the numerator of the sky pseudo-depth.
	planeHeight = 64
	// scrollDivisor converts game ticks to texel scroll.
	scrollDivisor = 128
	// floorScrollDivisor converts game ticks to indoor floor scroll.
	floorScrollDivisor = 32
	topEpsilon         = 1e-7
	farEpsilon         = 1e-7
)

// Viewport is the screen rectangle the sky covers.
type Viewport struct {
	X0, Y0, X1, Y1   float32
	CenterX, CenterY float32
}

// Texel is a projected sky texture coordinate with its perspective term.
type Texel struct {
	U, V float32
	RHW  float32
}

// Vertex is a screen-space sky vertex.
type Vertex struct {
	X, Y float32
	Texel
}

// Projector maps screen pixels to sky texture coordinates for one frame.
type Projector struct {
	cam     camera.State
	basis   Basis
	vp      Viewport
	texW    float32
	texH    float32
	ticks   int
	scroll  float32
	horizon float32
}

// NewProjector creates a projector for a sky texture of the given size.
// Non-positive sizes are treated as 1.
func NewProjector(vp Viewport, texW, texH int) *Projector {
	p := &Projector{vp: vp, texW: float32(max(texW, 1)), texH: float32(max(texH, 1))}
	p.Update(camera.Default(), 0)
	return p
}

// Update recomputes the basis and horizon for a camera and elapsed game
// time in ticks.
func (p *Projector) Update(cam camera.State, ticks int) {
	p.cam = cam
	p.ticks = ticks
	p.basis = ComputeBasis(cam, LeftProbe, FrontProbe)
	p.scroll = float32(ticks) / scrollDivisor
	vpd := p.viewPlaneDist()
	p.horizon = vpd*cam.Position.Z/(vpd+cam.Far) + p.vp.CenterY
}

// SetViewport changes the covered screen rectangle.
func (p *Projector) SetViewport(vp Viewport) {
	p.vp = vp
	p.Update(p.cam, p.ticks)
}

// Horizon returns the screen y of the horizon, lowered as the camera rises.
func (p *Projector) Horizon() float32 { return p.horizon }

// ProjectTexel returns the sky texture coordinate seen at screen pixel
// (sx, sy).
func (p *Projector) ProjectTexel(sx, sy float32) Texel {
	vpd := p.viewPlaneDist()
	x := (p.vp.CenterX - sx) / vpd
	y := (p.horizon - sy) / vpd

	b := p.basis
	left := b.Left.X*x + b.Left.Z*y + b.Left.Y
	front := b.Front.X*x + b.Front.Z*y + b.Front.Y

	pitch := float32(p.cam.Pitch)
	top := -math32.Sin((pitchBias-pitch)*math.RotToRad) - math32.Cos((pitch+pitchBias)*math.RotToRad)*y
	if top > 0 {
		top = -topEpsilon
	}
	depth := -planeHeight / top
	if depth < 0 || math32.IsInf(depth, 0) || math32.IsNaN(depth) {
		depth = p.cam.Far
	}

	return Texel{
		U:   (p.scroll + left*depth) / p.texW,
		V:   (p.scroll + front*depth) / p.texH,
		RHW: depth,
	}
}

// Quad returns the sky polygon: top-left, bottom-left at the projected
// horizon, bottom-right, top-right.
func (p *Projector) Quad() [4]Vertex {
	vp := p.vp
	bottom := p.bottom() + 1
	corners := [4][2]float32{
		{vp.X0, vp.Y0},
		{vp.X0, bottom},
		{vp.X1, bottom},
		{vp.X1, vp.Y0},
	}
	var q [4]Vertex
	for i, c := range corners {
		q[i] = Vertex{X: c[0], Y: c[1], Texel: p.ProjectTexel(c[0], c[1])}
	}
	return q
}

// Color returns the tint of the sky polygon. Outdoors the sky is fully
// dimmed by level, indoors it is not.
func (p *Projector) Color(src tint.Source, outdoor bool) uint32 {
	dim := lighting.LevelMin
	if outdoor {
		dim = lighting.LevelMax
	}
	return src.Color(dim, 0, p.cam.Far, true, nil)
}

// bottom is the screen y where the far clip plane meets the sky.
func (p *Projector) bottom() float32 {
	sin, cos := p.cam.PitchSinCos()
	far := p.cam.Far
	return p.vp.CenterY - p.viewPlaneDist()/(cos*far+farEpsilon)*(sin*far-p.cam.Position.Z)
}

func (p *Projector) viewPlaneDist() float32 {
	if p.cam.ViewPlaneDist <= 0 {
		return 1
	}
	return p.cam.ViewPlaneDist
}

// FloorScroll offsets the texture coordinate of an indoor sky floor so that
// it scrolls with time and the camera.
func FloorScroll(u, v float32, ticks int, cam camera.State) (float32, float32) {
	t := float32(ticks / floorScrollDivisor)
	du := int(t - cam.Position.X)
	dv := int(t + cam.Position.Y)
	return (float32(du) + u) * 0.25, (float32(dv) + v) * 0.25
}
