package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/framecore/pkg/math"
)

// Heightmap holds GridSize x GridSize height samples in row order.
type Heightmap struct {
	Heights [GridSize * GridSize]uint8
}

// At returns the sample at grid vertex (x, y). Out of range is 0.
func (h *Heightmap) At(x, y int) int {
	if x < 0 || y < 0 || x >= GridSize || y >= GridSize {
		return 0
	}
	return int(h.Heights[y*GridSize+x])
}

// Set stores a sample.
func (h *Heightmap) Set(x, y int, v uint8) {
	h.Heights[y*GridSize+x] = v
}

// Position returns the world position of grid vertex (x, y). The grid is
// centered on the origin with +Y pointing north.
func (h *Heightmap) Position(x, y int) [3]float32 {
	return [3]float32{
		float32((-64 + x) * BlockScale),
		float32((64 - y) * BlockScale),
		float32(HeightScale * h.At(x, y)),
	}
}

// HeightAt returns the bilinear terrain height at a world position.
func (h *Heightmap) HeightAt(worldX, worldY float32) float32 {
	fx := worldX/BlockScale + 64
	fy := 64 - worldY/BlockScale

	x := math.ClampInt(int(math32.Floor(fx)), 0, GridSize-2)
	y := math.ClampInt(int(math32.Floor(fy)), 0, GridSize-2)
	tx := clampf(fx-float32(x), 0, 1)
	ty := clampf(fy-float32(y), 0, 1)

	north := float32(h.At(x, y))*(1-tx) + float32(h.At(x+1, y))*tx
	south := float32(h.At(x, y+1))*(1-tx) + float32(h.At(x+1, y+1))*tx
	return HeightScale * (north*(1-ty) + south*ty)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
