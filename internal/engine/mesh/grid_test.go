package mesh

import "testing"

func TestGridCounts(t *testing.T) {
	tests := []struct {
		n int
	}{
		{16}, {32}, {128},
	}
	for _, tt := range tests {
		vertices, indices := Grid(tt.n, 1000)

		side := tt.n + 1
		if got, want := len(vertices), side*side*VertexStride; got != want {
			t.Errorf("n=%d: vertex floats = %d, want %d", tt.n, got, want)
		}
		if got, want := len(indices), 6*tt.n*tt.n; got != want {
			t.Errorf("n=%d: indices = %d, want %d", tt.n, got, want)
		}
	}
}

func TestGridCentredAndScaled(t *testing.T) {
	const scale = 500.0
	vertices, _ := Grid(8, scale)

	minX, maxX := float32(1e10), float32(-1e10)
	minZ, maxZ := float32(1e10), float32(-1e10)
	for i := 0; i < len(vertices); i += VertexStride {
		x, y, z := vertices[i], vertices[i+1], vertices[i+2]
		if y != 0 {
			t.Fatalf("vertex %d: y = %v, want flat grid", i/VertexStride, y)
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if z < minZ {
			minZ = z
		}
		if z > maxZ {
			maxZ = z
		}
	}

	if minX != -scale/2 || maxX != scale/2 {
		t.Errorf("x range [%v, %v], want [-%v, %v]", minX, maxX, scale/2, scale/2)
	}
	if minZ != -scale/2 || maxZ != scale/2 {
		t.Errorf("z range [%v, %v]", minZ, maxZ)
	}
}

func TestGridUVRange(t *testing.T) {
	vertices, _ := Grid(4, 100)

	for i := 0; i < len(vertices); i += VertexStride {
		u, v := vertices[i+3], vertices[i+4]
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("UV out of range: (%v, %v)", u, v)
		}
	}

	// First vertex maps to (0,0), last to (1,1).
	if vertices[3] != 0 || vertices[4] != 0 {
		t.Errorf("first UV = (%v, %v), want (0,0)", vertices[3], vertices[4])
	}
	last := len(vertices) - VertexStride
	if vertices[last+3] != 1 || vertices[last+4] != 1 {
		t.Errorf("last UV = (%v, %v), want (1,1)", vertices[last+3], vertices[last+4])
	}
}

func TestGridIndicesInBounds(t *testing.T) {
	vertices, indices := Grid(16, 1000)
	vertexCount := uint32(len(vertices) / VertexStride)

	for i, idx := range indices {
		if idx >= vertexCount {
			t.Fatalf("index %d = %d, out of %d vertices", i, idx, vertexCount)
		}
	}
}

func TestSetTileNoOpDetection(t *testing.T) {
	m := New(nil)

	// Never configured: always out of date.
	if m.upToDate(64, 1000) {
		t.Error("fresh mesh reports up to date")
	}

	// Simulate a configured mesh without touching GL state.
	m.vao = 1
	m.n = 64
	m.scale = 1000

	if !m.upToDate(64, 1000) {
		t.Error("identical tile should be up to date")
	}
	if m.upToDate(128, 1000) {
		t.Error("resolution change not detected")
	}
	if m.upToDate(64, 500) {
		t.Error("scale change not detected")
	}
}
