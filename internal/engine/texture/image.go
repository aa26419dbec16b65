// Package texture decodes texture files into tightly packed RGBA8 pixels.
package texture

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// ErrEmpty is returned for images with no pixels.
var ErrEmpty = errors.New("empty image")

// Image is a decoded texture, RGBA8 rows top to bottom.
type Image struct {
	Width  int
	Height int
	Pixels []byte
}

// NewImage allocates a transparent image.
func NewImage(w, h int) *Image {
	return &Image{Width: w, Height: h, Pixels: make([]byte, 4*w*h)}
}

// FromImage converts any image to the packed RGBA8 layout.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmpty
	}
	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}
	return &Image{Width: b.Dx(), Height: b.Dy(), Pixels: rgba.Pix}, nil
}

// RGBA returns the image as an *image.RGBA sharing the pixel buffer.
func (img *Image) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pixels,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Square reports whether the image can be stored in a texture array layer.
func (img *Image) Square() bool {
	return img.Width == img.Height && img.Width > 0
}

// Resize returns a copy scaled to w x h with bilinear filtering.
func (img *Image) Resize(w, h int) *Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img.RGBA(), img.RGBA().Bounds(), draw.Src, nil)
	return &Image{Width: w, Height: h, Pixels: dst.Pix}
}
