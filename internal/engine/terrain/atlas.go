package terrain

import (
	"fmt"
)

// Unit is one texture array: a fixed texel size and the layers in use.
type Unit struct {
	Dim    int
	Layers int
}

// UnitStats reports the usage of one unit.
type UnitStats struct {
	Unit   int `yaml:"unit"`
	Dim    int `yaml:"dim"`
	Layers int `yaml:"layers"`
}

// Atlas is the result of a successful Pack.
type Atlas struct {
	Slots    *SlotTable
	Units    []Unit
	Vertices []Vertex
}

// Upload creates one texture array per non-empty unit, uploads each
// assigned texture into its layer and then the vertex buffer.
func (a *Atlas) Upload(tex TextureSource, up Uploader) error {
	for unit, u := range a.Units {
		if u.Layers == 0 {
			continue
		}
		if err := up.AllocArray(unit, u.Dim, u.Layers); err != nil {
			return fmt.Errorf("alloc unit %d: %w", unit, err)
		}
		for _, name := range a.Slots.Unit(unit) {
			s, _ := a.Slots.Lookup(name)
			img, err := tex.Texture(name)
			if err != nil || img == nil {
				return fmt.Errorf("upload %q: %w", name, missing(err))
			}
			if img.Width != u.Dim || img.Height != u.Dim {
				return fmt.Errorf("upload %q: %w: %dx%d in %dpx unit %d",
					name, ErrTextureSize, img.Width, img.Height, u.Dim, unit)
			}
			if err := up.UploadLayer(unit, s.Layer, img); err != nil {
				return fmt.Errorf("upload %q to unit %d layer %d: %w", name, unit, s.Layer, err)
			}
		}
		if err := up.CompleteArray(unit); err != nil {
			return fmt.Errorf("complete unit %d: %w", unit, err)
		}
	}
	if err := up.UploadVertices(a.Vertices); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}
	return nil
}

// Release clears the slot table, unit sizes and layer counts.
func (a *Atlas) Release() {
	a.Slots.Clear()
	for i := range a.Units {
		a.Units[i] = Unit{}
	}
	a.Vertices = nil
}

// Stats returns the usage of every unit, empty ones included.
func (a *Atlas) Stats() []UnitStats {
	out := make([]UnitStats, len(a.Units))
	for i, u := range a.Units {
		out[i] = UnitStats{Unit: i, Dim: u.Dim, Layers: u.Layers}
	}
	return out
}
