// Package terrain packs outdoor tile textures into GPU texture-array slots and
// builds the static terrain vertex buffer.
package terrain

import (
	"errors"

	"github.com/Faultbox/framecore/internal/engine/texture"
)

// Grid dimensions of an outdoor map.
const (
	// GridSize is the number of heightmap vertices per side.
	GridSize = 128
	// TilesPerSide is the number of tiles per side.
	TilesPerSide = GridSize - 1
	// BlockScale is the world size of one tile.
	BlockScale = 512
	// HeightScale converts a heightmap sample to world units.
	HeightScale = 32
	// VerticesPerTile is two triangles.
	VerticesPerTile = 6
	// VertexFloats is the number of float32 values in a Vertex.
	VertexFloats = 11
)

// Texture-array limits.
const (
	MaxUnits  = 8
	MaxLayers = 256
)

// Water tiles.
const (
	// WaterTileName is the tile name drawn from the water animation.
	WaterTileName = "wtrtyl"
	// WaterFrameFormat names the reserved water animation frames.
	WaterFrameFormat = "HDWTR%03d"
	// DefaultWaterFrames is the number of water animation frames.
	DefaultWaterFrames = 7
	// AttribWater in Vertex.Attribs marks a tile that cycles through the
	// reserved water layers.
	AttribWater float32 = 1
)

var (
	// ErrNoFreeUnit means every unit is claimed by another texture size.
	ErrNoFreeUnit = errors.New("no texture unit for texture size")
	// ErrLayerOverflow means a unit has no layer left.
	ErrLayerOverflow = errors.New("texture unit layers exhausted")
	// ErrMissingTexture means a tile texture could not be resolved.
	ErrMissingTexture = errors.New("terrain texture not found")
	// ErrWaterNotReserved means a water tile appears while the water
	// frames are not reserved, so slot (0,0) belongs to another texture.
	ErrWaterNotReserved = errors.New("water tile without reserved water frames")
	// ErrTextureSize means a texture does not match its unit size.
	ErrTextureSize = errors.New("terrain texture size mismatch")
)

// Vertex is one terrain vertex as laid out in the GPU buffer.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Unit     float32
	Layer    float32
	Normal   [3]float32
	Attribs  float32
}

// TileWorld is an outdoor map as seen by the packer.
type TileWorld interface {
	// TileName returns the texture name of tile (x, y).
	TileName(x, y int) string
	// Heightmap returns the vertex heights.
	Heightmap() *Heightmap
}

// NormalSource is implemented by worlds that ship precomputed normals.
type NormalSource interface {
	Normals() *NormalTable
}

// TextureSource resolves texture names to decoded pixels.
type TextureSource interface {
	Texture(name string) (*texture.Image, error)
}

// Uploader receives the packed atlas. The GPU implementation creates one
// texture array per unit.
type Uploader interface {
	AllocArray(unit, dim, layers int) error
	UploadLayer(unit, layer int, img *texture.Image) error
	CompleteArray(unit int) error
	UploadVertices(verts []Vertex) error
}
