package terrain

// BuildVertices emits six vertices per tile in row order. tiles holds the
// slot of every tile, indexed y*TilesPerSide+x. Tiles set in water, which
// may be nil, get AttribWater.
func BuildVertices(h *Heightmap, normals *NormalTable, tiles []Slot, water []bool) []Vertex {
	verts := make([]Vertex, TilesPerSide*TilesPerSide*VerticesPerTile)
	corners := [VerticesPerTile]struct {
		dx, dy int
		u, v   float32
		bottom bool
	}{
		{0, 0, 0, 0, false},
		{1, 1, 1, 1, false},
		{1, 0, 1, 0, false},
		{0, 0, 0, 0, true},
		{0, 1, 0, 1, true},
		{1, 1, 1, 1, true},
	}

	for y := range TilesPerSide {
		for x := range TilesPerSide {
			s := tiles[y*TilesPerSide+x]
			var attribs float32
			if water != nil && water[y*TilesPerSide+x] {
				attribs = AttribWater
			}
			top := normals.Normal(x, y, false)
			bottom := normals.Normal(x, y, true)
			base := VerticesPerTile * (x + TilesPerSide*y)

			for i, c := range corners {
				n := top
				if c.bottom {
					n = bottom
				}
				verts[base+i] = Vertex{
					Position: h.Position(x+c.dx, y+c.dy),
					UV:       [2]float32{c.u, c.v},
					Unit:     float32(s.Unit),
					Layer:    float32(s.Layer),
					Normal:   [3]float32{n.X, n.Y, n.Z},
					Attribs:  attribs,
				}
			}
		}
	}
	return verts
}

// Flatten returns the vertices as a tightly packed float buffer.
func Flatten(verts []Vertex) []float32 {
	out := make([]float32, 0, len(verts)*VertexFloats)
	for _, v := range verts {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.UV[0], v.UV[1],
			v.Unit, v.Layer,
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.Attribs,
		)
	}
	return out
}
