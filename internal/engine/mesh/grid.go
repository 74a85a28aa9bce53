// Package mesh supplies the regular grid the water tile is rendered with.
package mesh

// VertexStride is the number of floats per vertex: position (x,y,z) + UV.
const VertexStride = 5

// Grid generates a planar (n+1) x (n+1) vertex grid in the XZ plane centred
// at the origin with side length scale, plus a triangle-list index buffer
// (6 indices per cell). Per-vertex UVs span [0,1]^2 aligned with the
// displacement texture.
func Grid(n int, scale float32) (vertices []float32, indices []uint32) {
	side := n + 1
	vertices = make([]float32, 0, side*side*VertexStride)
	indices = make([]uint32, 0, 6*n*n)

	for r := 0; r < side; r++ {
		v := float32(r) / float32(n)
		z := (v - 0.5) * scale
		for c := 0; c < side; c++ {
			u := float32(c) / float32(n)
			x := (u - 0.5) * scale
			vertices = append(vertices, x, 0, z, u, v)
		}
	}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			i0 := uint32(r*side + c)
			i1 := i0 + 1
			i2 := i0 + uint32(side)
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return vertices, indices
}
