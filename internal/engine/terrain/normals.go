package terrain

import (
	"github.com/Faultbox/framecore/pkg/math"
)

// NormalTable holds per-triangle normals and the per-tile index table that
// points into them. For tile (x, y) the top triangle uses
// Indices[2*x*GridSize+2*y+2] and the bottom one the entry after it.
type NormalTable struct {
	Normals []math.Vec3
	Indices []uint16
}

var up = math.Vec3{Z: 1}

// normalIndex returns the index-table entry of a tile triangle.
func normalIndex(x, y int, bottom bool) int {
	i := 2*x*GridSize + 2*y + 2
	if bottom {
		i++
	}
	return i
}

// Normal returns the normal of a tile triangle. Missing entries face up.
func (t *NormalTable) Normal(x, y int, bottom bool) math.Vec3 {
	if t == nil {
		return up
	}
	i := normalIndex(x, y, bottom)
	if i >= len(t.Indices) {
		return up
	}
	n := int(t.Indices[i])
	if n >= len(t.Normals) {
		return up
	}
	return t.Normals[n]
}

// BuildNormals computes face normals for every tile triangle of h.
func BuildNormals(h *Heightmap) *NormalTable {
	t := &NormalTable{
		Normals: make([]math.Vec3, 0, 2*TilesPerSide*TilesPerSide),
		Indices: make([]uint16, 2*GridSize*GridSize),
	}
	for y := range TilesPerSide {
		for x := range TilesPerSide {
			a := vec(h.Position(x, y))
			top := faceNormal(a, vec(h.Position(x+1, y+1)), vec(h.Position(x+1, y)))
			bottom := faceNormal(a, vec(h.Position(x, y+1)), vec(h.Position(x+1, y+1)))

			t.Indices[normalIndex(x, y, false)] = uint16(len(t.Normals))
			t.Normals = append(t.Normals, top)
			t.Indices[normalIndex(x, y, true)] = uint16(len(t.Normals))
			t.Normals = append(t.Normals, bottom)
		}
	}
	return t
}

func faceNormal(a, b, c math.Vec3) math.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l < 0.0001 {
		return up
	}
	return n.Scale(1 / l)
}

func vec(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
