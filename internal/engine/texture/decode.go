package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions Decode understands, in lookup order.
var Extensions = []string{".png", ".bmp", ".tga", ".tif", ".webp"}

// Decode decodes a texture file. name selects TGA by extension; every other
// format is detected from its header.
func Decode(name string, data []byte) (*Image, error) {
	var (
		src image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	img, err := FromImage(src)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}
