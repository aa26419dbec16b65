// Package debug holds viewer diagnostics.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as timestamped PNG files.
type Screenshots struct {
	Dir    string
	Prefix string

	now  func() time.Time
	last string
	seq  int
}

// NewScreenshots creates a writer for dir. An empty dir is the working
// directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// name returns the next file name. Captures within the same second get a
// sequence suffix.
func (s *Screenshots) name() string {
	stamp := s.now().Format("2006-01-02_15-04-05")
	if stamp == s.last {
		s.seq++
	} else {
		s.last, s.seq = stamp, 0
	}
	name := fmt.Sprintf("%s_%s.png", s.Prefix, stamp)
	if s.seq > 0 {
		name = fmt.Sprintf("%s_%s_%d.png", s.Prefix, stamp, s.seq)
	}
	return filepath.Join(s.Dir, name)
}

// Save writes width x height RGBA pixels read back from GL. Rows are
// bottom-up as GL returns them and are flipped on the way out.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}

	path := s.name()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, f.Close()
}
