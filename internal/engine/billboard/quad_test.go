package billboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/framecore/internal/engine/tint"
)

type fakeTint struct {
	color  uint32
	maxDim int
	dist   float32
	calls  int
}

func (f *fakeTint) Color(maxDim, _ int, distance float32, _ bool, _ *tint.Billboard) uint32 {
	f.maxDim = maxDim
	f.dist = distance
	f.calls++
	return f.color
}

func testSprite() Sprite {
	return Sprite{
		BufferWidth: 64, BufferHeight: 128,
		AreaX: 16, AreaY: 8, AreaWidth: 32, AreaHeight: 100,
		Texture: 9,
	}
}

func testSoft() SoftBillboard {
	return SoftBillboard{
		ScreenX: 300, ScreenY: 400, ScreenZ: 100,
		ProjX: 2, ProjY: 2,
		ObjectID: 77, ParentID: 3,
	}
}

func TestAddSpriteGeometry(t *testing.T) {
	l := NewList(4)
	src := &fakeTint{color: 0x00C0C0C0}

	slot, err := l.AddSprite(testSoft(), testSprite(), src, true)
	require.NoError(t, err)
	e := l.At(slot)

	assert.Equal(t, 4, e.NumVertices)
	assert.Equal(t, Transparent, e.Opacity)
	assert.Equal(t, uint32(9), e.Texture)
	assert.Equal(t, 77, e.ObjectID)
	assert.Equal(t, 3, e.ParentID)
	assert.Equal(t, float32(100), e.Depth)

	want := [4][4]float32{
		{268, 160, 0, 0},
		{268, 360, 0, 1},
		{332, 360, 1, 1},
		{332, 160, 1, 0},
	}
	zp := 1 - 1/(100*SpritePerspective)
	for k, w := range want {
		v := e.Vertices[k]
		assert.InDelta(t, w[0], v.X, 1e-4, "vertex %d x", k)
		assert.InDelta(t, w[1], v.Y, 1e-4, "vertex %d y", k)
		assert.Equal(t, w[2], v.U)
		assert.Equal(t, w[3], v.V)
		assert.InDelta(t, zp, v.Z, 1e-6)
		assert.InDelta(t, 0.01, v.RHW, 1e-7)
		assert.Equal(t, uint32(0x00C0C0C0), v.Diffuse)
	}
	assert.Equal(t, float32(100), src.dist)
}

func TestAddSpriteMirrored(t *testing.T) {
	l := NewList(4)
	soft := testSoft()
	soft.Flags = FlagMirrored

	slot, err := l.AddSprite(soft, testSprite(), &fakeTint{}, false)
	require.NoError(t, err)
	e := l.At(slot)

	assert.InDelta(t, 332, e.Vertices[0].X, 1e-4)
	assert.InDelta(t, 332, e.Vertices[1].X, 1e-4)
	assert.InDelta(t, 268, e.Vertices[2].X, 1e-4)
	assert.InDelta(t, 268, e.Vertices[3].X, 1e-4)
	assert.InDelta(t, 160, e.Vertices[0].Y, 1e-4)
}

func TestAddSpriteOpaque3Tinted(t *testing.T) {
	l := NewList(4)
	soft := testSoft()
	soft.DimmingLevel = 0xFF000000 | 3
	soft.TintColor = 0x00FF8040
	src := &fakeTint{color: 0x00FFFFFF}

	slot, err := l.AddSprite(soft, testSprite(), src, true)
	require.NoError(t, err)
	e := l.At(slot)

	assert.Equal(t, Opaque3, e.Opacity)
	assert.Equal(t, 3, src.maxDim)
	assert.Equal(t, uint32(0x007F4020), e.Vertices[0].Diffuse)
}

func TestAddSpriteTintDisabled(t *testing.T) {
	l := NewList(4)
	soft := testSoft()
	soft.TintColor = 0x00FF0000
	src := &fakeTint{color: 0x00808080}

	slot, err := l.AddSprite(soft, testSprite(), src, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00808080), l.At(slot).Vertices[2].Diffuse)
}

func TestAddSpriteFullList(t *testing.T) {
	l := NewList(1)
	src := &fakeTint{}
	_, err := l.AddSprite(testSoft(), testSprite(), src, false)
	require.NoError(t, err)

	_, err = l.AddSprite(testSoft(), testSprite(), src, false)
	assert.ErrorIs(t, err, ErrListFull)
	assert.Equal(t, 1, src.calls)
}

func TestAddSpriteNonPositiveDepth(t *testing.T) {
	l := NewList(1)
	soft := testSoft()
	soft.ScreenZ = 0

	slot, err := l.AddSprite(soft, testSprite(), &fakeTint{}, false)
	require.NoError(t, err)
	v := l.At(slot).Vertices[0]
	assert.False(t, v.RHW != v.RHW, "rhw is NaN")
	assert.Greater(t, v.RHW, float32(0))
}

func TestAddFan(t *testing.T) {
	l := NewList(4)
	verts := []FanVertex{
		{X: 10, Y: 10, Z: 300, Diffuse: 0x11},
		{X: 20, Y: 10, Z: 200, Diffuse: 0x22},
		{X: 15, Y: 20, Z: 250, Diffuse: 0x33},
	}

	slot, err := l.AddFan(verts, 0xFF000000, 1000)
	require.NoError(t, err)
	e := l.At(slot)

	assert.Equal(t, float32(200), e.Depth)
	assert.Equal(t, Opaque2, e.Opacity)
	assert.Equal(t, -1, e.ParentID)
	assert.Zero(t, e.Texture)
	assert.Equal(t, 3, e.NumVertices)
	assert.Equal(t, uint32(0x22), e.Vertices[1].Diffuse)
	assert.InDelta(t, 1-1/float32(200), e.Vertices[1].Z, 1e-6)
	assert.InDelta(t, 1/float32(300), e.Vertices[0].RHW, 1e-7)

	slot, err = l.AddFan(verts, 0x00ABCDEF, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00ABCDEF), l.At(slot).Vertices[0].Diffuse)
}

func TestAddFanTooSmall(t *testing.T) {
	l := NewList(4)
	slot, err := l.AddFan([]FanVertex{{Z: 1}, {Z: 2}}, 0, 1000)
	assert.NoError(t, err)
	assert.Equal(t, -1, slot)
	assert.Zero(t, l.Len())
}

func TestAddFanTruncatesVertices(t *testing.T) {
	l := NewList(1)
	verts := make([]FanVertex, MaxVertices+10)
	for i := range verts {
		verts[i].Z = float32(i + 1)
	}
	slot, err := l.AddFan(verts, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxVertices, l.At(slot).NumVertices)
}

func TestDrawDepth(t *testing.T) {
	const near, far, aspect = 4, 8000, 1.5
	assert.InDelta(t, 0, DrawDepth(2*near*aspect, near, far, aspect), 1e-5)
	assert.InDelta(t, 1, DrawDepth(far*aspect, near, far, aspect), 1e-5)

	mid := DrawDepth(1000, near, far, aspect)
	assert.Greater(t, mid, float32(0))
	assert.Less(t, mid, float32(1))
}
