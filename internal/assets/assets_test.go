package assets

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, size, size))))
	return buf.Bytes()
}

func TestTextureResolvesExtension(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{"grass.png": {Data: pngBytes(t, 8)}})

	img, err := m.Texture("Grass")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width)

	again, err := m.Texture("grass")
	require.NoError(t, err)
	assert.Same(t, img, again)

	hits, _ := m.Stats()
	assert.Equal(t, 1, hits)
}

func TestTextureMatchesAnyCase(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{
		"HDWTR000.png": {Data: pngBytes(t, 4)},
		"Grass01.PNG":  {Data: pngBytes(t, 8)},
		"sand.png":     {Data: pngBytes(t, 2)},
	})

	img, err := m.Texture("HDWTR000")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width)

	again, err := m.Texture("hdwtr000")
	require.NoError(t, err)
	assert.Same(t, img, again, "cached under the lowered name")

	img, err = m.Texture("grass01")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Width)

	img, err = m.Texture("SAND")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
}

func TestTextureNotFound(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{})

	_, err := m.Texture("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLaterDirWins(t *testing.T) {
	m := NewManager()
	m.AddFS("base", fstest.MapFS{"sky.png": {Data: pngBytes(t, 4)}})
	m.AddFS("mod", fstest.MapFS{"sky.png": {Data: pngBytes(t, 16)}})

	img, err := m.Texture("sky")
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, []string{"base", "mod"}, m.Dirs())
}

func TestAddDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirt.png"), pngBytes(t, 2), 0o644))

	m := NewManager()
	require.NoError(t, m.AddDir(dir))
	img, err := m.Texture("dirt")
	require.NoError(t, err)
	assert.Equal(t, 2, img.Height)

	assert.Error(t, m.AddDir(filepath.Join(dir, "dirt.png")))
	assert.Error(t, m.AddDir(filepath.Join(dir, "nope")))
}

func TestDecodeErrorIsReported(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{"bad.png": {Data: []byte("junk")}})

	_, err := m.Texture("bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClose(t *testing.T) {
	m := NewManager()
	m.AddFS("mem", fstest.MapFS{"a.png": {Data: pngBytes(t, 2)}})
	_, err := m.Texture("a")
	require.NoError(t, err)

	m.Close()
	_, err = m.Texture("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCache(t *testing.T) {
	c := NewCache[int]()
	c.Set("a", 1)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.Get("b")
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	c.Clear()
	hits, misses = c.Stats()
	assert.Zero(t, hits+misses)
}
