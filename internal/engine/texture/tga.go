package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types.
const (
	tgaUncompressed = 2
	tgaRLE          = 10
	tgaHeaderSize   = 18
	tgaTopToBottom  = 0x20
)

var (
	// ErrTGAUnsupported is returned for color-mapped, grayscale or
	// low-depth TGA files.
	ErrTGAUnsupported = errors.New("unsupported TGA")
	// ErrTGATruncated is returned when pixel data ends early.
	ErrTGATruncated = errors.New("truncated TGA")
)

// DecodeTGA decodes uncompressed and RLE true-color TGA files with 24 or 32
// bits per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, ErrTGATruncated
	}
	kind := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])

	switch {
	case data[1] != 0:
		return nil, fmt.Errorf("%w: color-mapped", ErrTGAUnsupported)
	case kind != tgaUncompressed && kind != tgaRLE:
		return nil, fmt.Errorf("%w: type %d", ErrTGAUnsupported, kind)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: %d bpp", ErrTGAUnsupported, bpp)
	}

	offset := tgaHeaderSize + int(data[0])
	if offset > len(data) {
		return nil, ErrTGATruncated
	}
	r := tgaReader{
		data:  data[offset:],
		bytes: bpp / 8,
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		flip:  data[17]&tgaTopToBottom == 0,
	}

	total := width * height
	if kind == tgaUncompressed {
		for r.n < total {
			if !r.raw(1) {
				return nil, ErrTGATruncated
			}
		}
		return r.img, nil
	}

	for r.n < total {
		if len(r.data) == 0 {
			return nil, ErrTGATruncated
		}
		packet := r.data[0]
		r.data = r.data[1:]
		count := min(int(packet&0x7F)+1, total-r.n)
		var ok bool
		if packet&0x80 != 0 {
			ok = r.repeat(count)
		} else {
			ok = r.raw(count)
		}
		if !ok {
			return nil, ErrTGATruncated
		}
	}
	return r.img, nil
}

// tgaReader writes BGR(A) pixels into img in file order.
type tgaReader struct {
	data  []byte
	bytes int
	img   *image.RGBA
	flip  bool
	n     int
}

func (r *tgaReader) pixel() ([4]byte, bool) {
	if len(r.data) < r.bytes {
		return [4]byte{}, false
	}
	p := [4]byte{r.data[2], r.data[1], r.data[0], 0xFF}
	if r.bytes == 4 {
		p[3] = r.data[3]
	}
	r.data = r.data[r.bytes:]
	return p, true
}

func (r *tgaReader) put(p [4]byte) {
	w := r.img.Rect.Dx()
	x, y := r.n%w, r.n/w
	if r.flip {
		y = r.img.Rect.Dy() - 1 - y
	}
	copy(r.img.Pix[r.img.PixOffset(x, y):], p[:])
	r.n++
}

func (r *tgaReader) raw(count int) bool {
	for range count {
		p, ok := r.pixel()
		if !ok {
			return false
		}
		r.put(p)
	}
	return true
}

func (r *tgaReader) repeat(count int) bool {
	p, ok := r.pixel()
	if !ok {
		return false
	}
	for range count {
		r.put(p)
	}
	return true
}
