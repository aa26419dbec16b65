package texture

// ColorKey is an RGB color drawn as fully transparent.
type ColorKey struct {
	R, G, B   uint8
	Tolerance uint8
}

// Magenta is the conventional sprite transparency key.
var Magenta = ColorKey{R: 255, G: 0, B: 255, Tolerance: 5}

// Matches reports whether r, g, b is within tolerance of the key.
func (k ColorKey) Matches(r, g, b uint8) bool {
	return near(r, k.R, k.Tolerance) && near(g, k.G, k.Tolerance) && near(b, k.B, k.Tolerance)
}

// Apply clears every pixel matching the key to transparent black so that
// filtering does not bleed the key color.
func (k ColorKey) Apply(img *Image) {
	p := img.Pixels
	for i := 0; i+3 < len(p); i += 4 {
		if k.Matches(p[i], p[i+1], p[i+2]) {
			p[i], p[i+1], p[i+2], p[i+3] = 0, 0, 0, 0
		}
	}
}

func near(v, want, tol uint8) bool {
	d := int(v) - int(want)
	if d < 0 {
		d = -d
	}
	return d <= int(tol)
}
