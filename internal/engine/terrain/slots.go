package terrain

import (
	"sort"
)

// Slot is a texture's place in the atlas.
type Slot struct {
	Unit  int
	Layer int
}

// Encode packs the slot as (unit<<8)|layer.
func (s Slot) Encode() int {
	return s.Unit<<8 | s.Layer
}

// DecodeSlot unpacks an encoded slot.
func DecodeSlot(v int) Slot {
	return Slot{Unit: (v >> 8) & 0xFF, Layer: v & 0xFF}
}

// SlotTable maps texture names to slots.
type SlotTable struct {
	slots map[string]Slot
}

// NewSlotTable creates an empty table.
func NewSlotTable() *SlotTable {
	return &SlotTable{slots: make(map[string]Slot)}
}

// Lookup returns the slot of name.
func (t *SlotTable) Lookup(name string) (Slot, bool) {
	s, ok := t.slots[name]
	return s, ok
}

// Len returns the number of mapped names.
func (t *SlotTable) Len() int { return len(t.slots) }

func (t *SlotTable) assign(name string, s Slot) {
	t.slots[name] = s
}

// Names returns the mapped names ordered by unit then layer.
func (t *SlotTable) Names() []string {
	names := make([]string, 0, len(t.slots))
	for n := range t.slots {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return t.slots[names[i]].Encode() < t.slots[names[j]].Encode()
	})
	return names
}

// Unit returns the names assigned to unit ordered by layer.
func (t *SlotTable) Unit(unit int) []string {
	var names []string
	for _, n := range t.Names() {
		if t.slots[n].Unit == unit {
			names = append(names, n)
		}
	}
	return names
}

// Encoded returns the table in its packed integer form.
func (t *SlotTable) Encoded() map[string]int {
	out := make(map[string]int, len(t.slots))
	for n, s := range t.slots {
		out[n] = s.Encode()
	}
	return out
}

// Clear removes every mapping.
func (t *SlotTable) Clear() {
	clear(t.slots)
}
