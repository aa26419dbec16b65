// Package level reads the YAML level description used by the tools: tile
// textures, the heightmap, lights and the shading environment.
//
// A minimal description:
//
//	name: field01
//	tiles:
//	  fill: grass01
//	  regions:
//	    - {x: 10, y: 10, w: 4, h: 4, texture: wtrtyl}
//	heights:
//	  base: 4
//	  bumps:
//	    - {x: 64, y: 64, radius: 12, height: 30}
//	lights:
//	  - {position: [0, 0, 256], radius: 1024, color: 0xFFC080}
package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/framecore/internal/engine/lighting"
	"github.com/Faultbox/framecore/internal/engine/terrain"
	"github.com/Faultbox/framecore/internal/engine/tint"
	"github.com/Faultbox/framecore/pkg/math"
)

// ErrInvalid is wrapped by every description validation failure.
var ErrInvalid = errors.New("invalid level description")

// Description is a parsed level file.
type Description struct {
	Name        string       `yaml:"name"`
	Tiles       TileLayout   `yaml:"tiles"`
	Heights     HeightLayout `yaml:"heights"`
	Lights      []Light      `yaml:"lights,omitempty"`
	Indoor      *IndoorSpec  `yaml:"indoor,omitempty"`
	Environment Environment  `yaml:"environment"`

	tiles     []string
	heightmap *terrain.Heightmap
}

// TileLayout fills every tile with Fill, then paints Regions in order.
type TileLayout struct {
	Fill    string   `yaml:"fill"`
	Regions []Region `yaml:"regions,omitempty"`
}

// Region is a rectangle of tiles sharing one texture.
type Region struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	W       int    `yaml:"w"`
	H       int    `yaml:"h"`
	Texture string `yaml:"texture"`
}

// HeightLayout starts every vertex at Base, copies explicit Rows from the
// north edge down, then raises cone-shaped Bumps.
type HeightLayout struct {
	Base  int     `yaml:"base"`
	Rows  [][]int `yaml:"rows,omitempty"`
	Bumps []Bump  `yaml:"bumps,omitempty"`
}

// Bump is a cone centred on a heightmap vertex.
type Bump struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Radius int `yaml:"radius"`
	Height int `yaml:"height"`
}

// Light is a stationary light. A zero color means white.
type Light struct {
	Position [3]float32 `yaml:"position,flow"`
	Radius   float32    `yaml:"radius"`
	Color    uint32     `yaml:"color,omitempty"`
}

// IndoorSpec marks the level as indoor and lists its sectors.
type IndoorSpec struct {
	Sectors []SectorSpec  `yaml:"sectors"`
	Lights  []SectorLight `yaml:"lights,omitempty"`
}

// SectorSpec is one indoor sector.
type SectorSpec struct {
	MinAmbient int   `yaml:"min_ambient"`
	Lights     []int `yaml:"lights,flow,omitempty"`
}

// SectorLight is a light bound to sectors by index.
type SectorLight struct {
	Light    `yaml:",inline"`
	Inactive bool `yaml:"inactive,omitempty"`
}

// Environment is the shading state of the level. Zero values for
// shade_distance and max_terrain_dimming keep the defaults.
type Environment struct {
	Night             bool    `yaml:"night"`
	Underwater        bool    `yaml:"underwater"`
	Armageddon        bool    `yaml:"armageddon"`
	TorchPower        int     `yaml:"torch_power"`
	FogDensity        float32 `yaml:"fog_density"`
	ShadeDistance     float32 `yaml:"shade_distance"`
	MaxTerrainDimming int     `yaml:"max_terrain_dimming"`
	WaterSpeed        float32 `yaml:"water_speed"`
	Hour              int     `yaml:"hour"`
	Minute            int     `yaml:"minute"`
}

var _ terrain.TileWorld = (*Description)(nil)

// Load reads and validates a description file.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a description. Unknown keys are errors.
func Parse(data []byte) (*Description, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	d := &Description{}
	if err := dec.Decode(d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := d.build(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Description) build() error {
	if d.Tiles.Fill == "" {
		return fmt.Errorf("tiles.fill is empty: %w", ErrInvalid)
	}
	d.tiles = make([]string, terrain.TilesPerSide*terrain.TilesPerSide)
	for i := range d.tiles {
		d.tiles[i] = d.Tiles.Fill
	}
	for i, r := range d.Tiles.Regions {
		if r.Texture == "" || r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 ||
			r.X+r.W > terrain.TilesPerSide || r.Y+r.H > terrain.TilesPerSide {
			return fmt.Errorf("tiles.regions[%d] %+v: %w", i, r, ErrInvalid)
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				d.tiles[y*terrain.TilesPerSide+x] = r.Texture
			}
		}
	}

	h, err := d.Heights.build()
	if err != nil {
		return err
	}
	d.heightmap = h

	for i, l := range d.Lights {
		if l.Radius < 0 {
			return fmt.Errorf("lights[%d] radius %v: %w", i, l.Radius, ErrInvalid)
		}
	}
	if d.Indoor != nil {
		for i, s := range d.Indoor.Sectors {
			if s.MinAmbient < lighting.LevelMin || s.MinAmbient > lighting.LevelMax {
				return fmt.Errorf("indoor.sectors[%d] min_ambient %d: %w", i, s.MinAmbient, ErrInvalid)
			}
			for _, li := range s.Lights {
				if li < 0 || li >= len(d.Indoor.Lights) {
					return fmt.Errorf("indoor.sectors[%d] light %d: %w", i, li, ErrInvalid)
				}
			}
		}
	}
	return nil
}

func (hl HeightLayout) build() (*terrain.Heightmap, error) {
	h := &terrain.Heightmap{}
	if err := checkHeight("heights.base", hl.Base); err != nil {
		return nil, err
	}
	for i := range h.Heights {
		h.Heights[i] = uint8(hl.Base)
	}

	if len(hl.Rows) > terrain.GridSize {
		return nil, fmt.Errorf("heights.rows has %d rows: %w", len(hl.Rows), ErrInvalid)
	}
	for y, row := range hl.Rows {
		if len(row) > terrain.GridSize {
			return nil, fmt.Errorf("heights.rows[%d] has %d samples: %w", y, len(row), ErrInvalid)
		}
		for x, v := range row {
			if err := checkHeight(fmt.Sprintf("heights.rows[%d][%d]", y, x), v); err != nil {
				return nil, err
			}
			h.Set(x, y, uint8(v))
		}
	}

	for _, b := range hl.Bumps {
		if b.Radius <= 0 {
			continue
		}
		r := float32(b.Radius)
		for y := max(b.Y-b.Radius, 0); y <= min(b.Y+b.Radius, terrain.GridSize-1); y++ {
			for x := max(b.X-b.Radius, 0); x <= min(b.X+b.Radius, terrain.GridSize-1); x++ {
				dx, dy := float32(x-b.X), float32(y-b.Y)
				dist := math32.Sqrt(dx*dx + dy*dy)
				if dist >= r {
					continue
				}
				v := h.At(x, y) + int(float32(b.Height)*(r-dist)/r)
				h.Set(x, y, uint8(math.ClampInt(v, 0, 255)))
			}
		}
	}
	return h, nil
}

func checkHeight(field string, v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%s = %d out of 0..255: %w", field, v, ErrInvalid)
	}
	return nil
}

// TileName returns the texture name of tile (x, y).
func (d *Description) TileName(x, y int) string {
	if x < 0 || y < 0 || x >= terrain.TilesPerSide || y >= terrain.TilesPerSide {
		return d.Tiles.Fill
	}
	return d.tiles[y*terrain.TilesPerSide+x]
}

// Heightmap returns the built vertex heights.
func (d *Description) Heightmap() *terrain.Heightmap {
	return d.heightmap
}

func (l Light) color() uint32 {
	if l.Color == 0 {
		return lighting.White
	}
	return l.Color & 0xFFFFFF
}

func (l Light) position() math.Vec3 {
	return math.Vec3{X: l.Position[0], Y: l.Position[1], Z: l.Position[2]}
}

// StationaryLights returns the level lights in file order.
func (d *Description) StationaryLights() []lighting.StationaryLight {
	out := make([]lighting.StationaryLight, len(d.Lights))
	for i, l := range d.Lights {
		out[i] = lighting.StationaryLight{Position: l.position(), Radius: l.Radius, Color: l.color()}
	}
	return out
}

// IndoorLights returns the indoor light data, or nil for an outdoor level.
func (d *Description) IndoorLights() *lighting.Indoor {
	if d.Indoor == nil {
		return nil
	}
	in := &lighting.Indoor{
		Sectors: make([]lighting.Sector, len(d.Indoor.Sectors)),
		Lights:  make([]lighting.SectorLight, len(d.Indoor.Lights)),
	}
	for i, s := range d.Indoor.Sectors {
		in.Sectors[i] = lighting.Sector{MinAmbient: s.MinAmbient, Lights: append([]int(nil), s.Lights...)}
	}
	for i, l := range d.Indoor.Lights {
		var attrs uint16
		if l.Inactive {
			attrs |= lighting.SectorLightInactive
		}
		in.Lights[i] = lighting.SectorLight{
			Position:   l.position(),
			Radius:     l.Radius,
			Color:      l.color(),
			Attributes: attrs,
		}
	}
	return in
}

// TintEnvironment returns the shading environment.
func (d *Description) TintEnvironment() tint.Environment {
	env := tint.DefaultEnvironment()
	e := d.Environment
	env.Night = e.Night
	env.Underwater = e.Underwater
	env.Armageddon = e.Armageddon
	env.TorchPower = e.TorchPower
	env.FogDensity = e.FogDensity
	if e.ShadeDistance > 0 {
		env.ShadeDistance = e.ShadeDistance
	}
	if e.MaxTerrainDimming > 0 {
		env.MaxTerrainDimming = e.MaxTerrainDimming
	}
	return env
}

// Sun returns the directional terrain light for the level time of day.
func (d *Description) Sun() lighting.Sun {
	e := d.Environment
	return lighting.SunForTime(e.Hour, e.Minute, e.Night, e.Armageddon)
}
