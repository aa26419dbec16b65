package terrain

import (
	"fmt"

	"go.uber.org/zap"
)

// Options controls atlas packing.
type Options struct {
	// ReserveWater puts the water animation frames in unit 0, layers
	// 0..WaterFrames-1, before any tile texture.
	ReserveWater bool
	WaterFrames  int
	Units        int
	MaxLayers    int
}

// DefaultOptions returns the standard packing limits.
func DefaultOptions() Options {
	return Options{
		ReserveWater: true,
		WaterFrames:  DefaultWaterFrames,
		Units:        MaxUnits,
		MaxLayers:    MaxLayers,
	}
}

// Packer assigns tile textures to texture-array slots.
type Packer struct {
	opts Options
	log  *zap.Logger
}

// NewPacker creates a packer. Out of range limits fall back to the defaults.
// A nil logger disables logging.
func NewPacker(opts Options, log *zap.Logger) *Packer {
	def := DefaultOptions()
	if opts.Units <= 0 || opts.Units > MaxUnits {
		opts.Units = def.Units
	}
	if opts.MaxLayers <= 0 || opts.MaxLayers > MaxLayers {
		opts.MaxLayers = def.MaxLayers
	}
	if opts.WaterFrames <= 0 {
		opts.WaterFrames = def.WaterFrames
	}
	if opts.WaterFrames > opts.MaxLayers {
		opts.WaterFrames = opts.MaxLayers
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Packer{opts: opts, log: log}
}

// WaterFrameName returns the texture name of water animation frame i.
func WaterFrameName(i int) string {
	return fmt.Sprintf(WaterFrameFormat, i)
}

// packState is the in-progress assignment of one Pack call.
type packState struct {
	opts  Options
	slots *SlotTable
	units []Unit
	tex   TextureSource
}

// Pack walks every tile in row order, assigns its texture a slot and
// builds the vertex buffer. On error no atlas is returned.
func (p *Packer) Pack(world TileWorld, tex TextureSource) (*Atlas, error) {
	st := &packState{
		opts:  p.opts,
		slots: NewSlotTable(),
		units: make([]Unit, p.opts.Units),
		tex:   tex,
	}

	if p.opts.ReserveWater {
		if err := st.reserveWater(); err != nil {
			return nil, err
		}
	}

	var tiles [TilesPerSide * TilesPerSide]Slot
	var water []bool
	if p.opts.ReserveWater {
		water = make([]bool, len(tiles))
	}
	for y := range TilesPerSide {
		for x := range TilesPerSide {
			name := world.TileName(x, y)
			s, err := st.slotFor(name)
			if err != nil {
				return nil, fmt.Errorf("tile (%d,%d) %q: %w", x, y, name, err)
			}
			tiles[y*TilesPerSide+x] = s
			if water != nil && name == WaterTileName {
				water[y*TilesPerSide+x] = true
			}
		}
	}

	h := world.Heightmap()
	if h == nil {
		h = &Heightmap{}
	}
	var normals *NormalTable
	if ns, ok := world.(NormalSource); ok {
		normals = ns.Normals()
	}
	if normals == nil {
		normals = BuildNormals(h)
	}

	a := &Atlas{
		Slots:    st.slots,
		Units:    st.units,
		Vertices: BuildVertices(h, normals, tiles[:], water),
	}

	for i, u := range a.Units {
		if u.Layers > 0 {
			p.log.Info("packed terrain unit",
				zap.Int("unit", i),
				zap.Int("dim", u.Dim),
				zap.Int("layers", u.Layers))
		}
	}
	p.log.Info("terrain atlas packed",
		zap.Int("textures", a.Slots.Len()),
		zap.Int("vertices", len(a.Vertices)))
	return a, nil
}

func (st *packState) reserveWater() error {
	first, err := st.tex.Texture(WaterFrameName(0))
	if err != nil || first == nil {
		return fmt.Errorf("water frame %q: %w", WaterFrameName(0), missing(err))
	}
	st.units[0].Dim = first.Width
	for i := range st.opts.WaterFrames {
		st.slots.assign(WaterFrameName(i), Slot{Unit: 0, Layer: i})
	}
	st.units[0].Layers = st.opts.WaterFrames
	return nil
}

func (st *packState) slotFor(name string) (Slot, error) {
	if s, ok := st.slots.Lookup(name); ok {
		return s, nil
	}
	if name == WaterTileName {
		if !st.opts.ReserveWater {
			return Slot{}, ErrWaterNotReserved
		}
		return Slot{}, nil
	}

	img, err := st.tex.Texture(name)
	if err != nil || img == nil {
		return Slot{}, missing(err)
	}

	unit := -1
	for i, u := range st.units {
		if u.Dim == img.Width || u.Dim == 0 {
			unit = i
			break
		}
	}
	if unit < 0 {
		return Slot{}, fmt.Errorf("%w: %dpx", ErrNoFreeUnit, img.Width)
	}

	u := &st.units[unit]
	if u.Layers >= st.opts.MaxLayers {
		return Slot{}, fmt.Errorf("%w: unit %d", ErrLayerOverflow, unit)
	}
	if u.Dim == 0 {
		u.Dim = img.Width
	}
	s := Slot{Unit: unit, Layer: u.Layers}
	u.Layers++
	st.slots.assign(name, s)
	return s, nil
}

func missing(err error) error {
	if err == nil {
		return ErrMissingTexture
	}
	return fmt.Errorf("%w: %w", ErrMissingTexture, err)
}
