package terrain

import (
	"fmt"

	"github.com/Faultbox/framecore/internal/engine/texture"
)

// FitSource resizes every texture of Source to Dim x Dim, so that a level
// with mixed texture sizes packs into a single unit size.
type FitSource struct {
	Source TextureSource
	Dim    int

	cache map[string]*texture.Image
}

// NewFitSource wraps src. A non-positive dim returns src unchanged.
func NewFitSource(src TextureSource, dim int) TextureSource {
	if dim <= 0 {
		return src
	}
	return &FitSource{Source: src, Dim: dim, cache: make(map[string]*texture.Image)}
}

// Texture returns the resized texture. Textures already at the target size
// are passed through.
func (f *FitSource) Texture(name string) (*texture.Image, error) {
	if img, ok := f.cache[name]; ok {
		return img, nil
	}
	img, err := f.Source.Texture(name)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrMissingTexture)
	}
	if !img.Square() || img.Width != f.Dim {
		img = img.Resize(f.Dim, f.Dim)
	}
	f.cache[name] = img
	return img, nil
}
