package level

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/framecore/internal/engine/terrain"
)

// SlotDump is the YAML report of a packed atlas.
type SlotDump struct {
	Level    string              `yaml:"level"`
	Textures int                 `yaml:"textures"`
	Units    []terrain.UnitStats `yaml:"units"`
	Slots    []SlotEntry         `yaml:"slots"`
}

// SlotEntry is one texture assignment. Encoded is (unit<<8)|layer.
type SlotEntry struct {
	Name    string `yaml:"name"`
	Unit    int    `yaml:"unit"`
	Layer   int    `yaml:"layer"`
	Encoded int    `yaml:"encoded"`
}

// NewSlotDump builds the report for an atlas, slots ordered by encoding.
func NewSlotDump(name string, a *terrain.Atlas) SlotDump {
	d := SlotDump{
		Level:    name,
		Textures: a.Slots.Len(),
		Units:    a.Stats(),
	}
	encoded := a.Slots.Encoded()
	for _, n := range a.Slots.Names() {
		s, _ := a.Slots.Lookup(n)
		d.Slots = append(d.Slots, SlotEntry{Name: n, Unit: s.Unit, Layer: s.Layer, Encoded: encoded[n]})
	}
	return d
}

// WriteSlotDump writes the report as YAML.
func WriteSlotDump(w io.Writer, name string, a *terrain.Atlas) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewSlotDump(name, a)); err != nil {
		return fmt.Errorf("encode slot dump: %w", err)
	}
	return enc.Close()
}
