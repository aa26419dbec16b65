package billboard

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/framecore/internal/engine/tint"
)

// Perspective factors for the post-projection depth of each vertex.
const (
	// SpritePerspective is k in z' = 1 - 1/(z*k) for sprite quads.
	SpritePerspective float32 = 0.061758894
	// fanDepthScale is multiplied by 1/farClip for particle fans.
	fanDepthScale float32 = 1000
	// minDepth replaces non-positive camera-space depths.
	minDepth float32 = 1e-4
)

// FlagMirrored flips a sprite horizontally.
const FlagMirrored uint16 = 0x04

// opaque3Mask marks a dimming level whose sprite is drawn Opaque3.
const opaque3Mask uint32 = 0xFF000000

// TintSource resolves the tint of a sprite. tint.Resolver implements it.
type TintSource = tint.Source

// SoftBillboard is a sprite after projection to screen space.
type SoftBillboard struct {
	ScreenX, ScreenY float32
	ScreenZ          float32 // camera-space depth
	ProjX, ProjY     float32 // screen pixels per sprite pixel
	Flags            uint16
	DimmingLevel     uint32 // low bits level, alpha byte selects Opaque3
	TintColor        uint32 // 0 when the sprite has no tint override
	ObjectID         int
	ParentID         int
}

// Sprite is the pixel area of a sprite frame within its buffer. The buffer
// is anchored at its bottom center.
type Sprite struct {
	BufferWidth, BufferHeight int
	AreaX, AreaY              int
	AreaWidth, AreaHeight     int
	Texture                   uint32
}

// FanVertex is one vertex of a particle or spell-sphere fan.
type FanVertex struct {
	X, Y, Z float32
	Diffuse uint32
}

// AddSprite inserts a camera-facing quad for a sprite and returns its slot.
// When tinting is on and the sprite has a tint override, the resolved color
// is modulated with it.
func (l *List) AddSprite(soft SoftBillboard, sprite Sprite, r TintSource, tinting bool) (int, error) {
	i, err := l.InsertByDepth(soft.ScreenZ)
	if err != nil {
		return 0, fmt.Errorf("add sprite object %d: %w", soft.ObjectID, err)
	}
	e := &l.entries[i]

	opaque3 := soft.DimmingLevel&opaque3Mask != 0
	if opaque3 {
		e.Opacity = Opaque3
	} else {
		e.Opacity = Transparent
	}
	e.ObjectID = soft.ObjectID
	e.ParentID = soft.ParentID
	e.Texture = sprite.Texture
	e.NumVertices = 4

	level := int(soft.DimmingLevel &^ opaque3Mask)
	diffuse := r.Color(level, 0, soft.ScreenZ, false, nil)
	if tinting && soft.TintColor != 0 {
		diffuse = tint.Blend(soft.TintColor, diffuse)
		if opaque3 {
			diffuse = tint.HalfBright(diffuse)
		}
	}

	z := safeDepth(soft.ScreenZ)
	zp := 1 - 1/(z*SpritePerspective)
	rhw := 1 / z

	halfW := sprite.BufferWidth >> 1
	left := float32(halfW - sprite.AreaX)
	right := float32(sprite.AreaX + sprite.AreaWidth + halfW - sprite.BufferWidth)
	top := float32(sprite.BufferHeight - sprite.AreaY)
	bottom := float32(sprite.BufferHeight - sprite.AreaY - sprite.AreaHeight)
	if soft.Flags&FlagMirrored != 0 {
		left, right = -left, -right
	}

	corners := [4]struct{ x, y, u, v float32 }{
		{soft.ScreenX - left*soft.ProjX, soft.ScreenY - top*soft.ProjY, 0, 0},
		{soft.ScreenX - left*soft.ProjX, soft.ScreenY - bottom*soft.ProjY, 0, 1},
		{soft.ScreenX + right*soft.ProjX, soft.ScreenY - bottom*soft.ProjY, 1, 1},
		{soft.ScreenX + right*soft.ProjX, soft.ScreenY - top*soft.ProjY, 1, 0},
	}
	for k, c := range corners {
		e.Vertices[k] = Vertex{X: c.x, Y: c.y, Z: zp, RHW: rhw, Diffuse: diffuse, U: c.u, V: c.v}
	}
	return i, nil
}

// AddFan inserts an untextured polygon such as a spell sphere. Fans with
// fewer than three vertices are ignored and return -1. Vertices beyond
// MaxVertices are dropped. If diffuse has a zero alpha byte it colors every
// vertex, otherwise each vertex keeps its own color.
func (l *List) AddFan(verts []FanVertex, diffuse uint32, farClip float32) (int, error) {
	if len(verts) < 3 {
		return -1, nil
	}
	if len(verts) > MaxVertices {
		verts = verts[:MaxVertices]
	}

	depth := math32.Inf(1)
	for _, v := range verts {
		depth = math32.Min(depth, v.Z)
	}

	i, err := l.InsertByDepth(depth)
	if err != nil {
		return 0, fmt.Errorf("add fan: %w", err)
	}
	e := &l.entries[i]
	e.ParentID = -1
	e.Opacity = Opaque2
	e.NumVertices = len(verts)

	scale := fanDepthScale
	if farClip > 0 {
		scale /= farClip
	}
	for k, v := range verts {
		z := safeDepth(v.Z)
		c := diffuse
		if diffuse&opaque3Mask != 0 {
			c = v.Diffuse
		}
		e.Vertices[k] = Vertex{
			X: v.X, Y: v.Y, Z: 1 - 1/(z*scale),
			RHW:     1 / z,
			Diffuse: c,
		}
	}
	return i, nil
}

// DrawDepth maps a camera-space depth to the [0, 1] depth written when the
// list is drawn.
func DrawDepth(z, near, far, aspect float32) float32 {
	z = safeDepth(z)
	n := 1 / (near * aspect * 2)
	f := 1 / (far * aspect)
	if f == n {
		return 0
	}
	return (1/z - n) / (f - n)
}

func safeDepth(z float32) float32 {
	if z <= 0 || math32.IsNaN(z) {
		return minDepth
	}
	return z
}
