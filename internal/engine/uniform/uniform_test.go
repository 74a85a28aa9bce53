package uniform

import (
	"encoding/binary"
	gomath "math"
	"testing"

	"github.com/kentril0/watersurface/pkg/math"
)

// std140: scalars align to 4, vec3/vec4 to 16, mat4 occupies four vec4
// columns. The schemas must match offsets computed by those rules.
func TestVertexSchemaOffsets(t *testing.T) {
	want := map[string]int{
		"model":     0,
		"view":      64,
		"proj":      128,
		"heightAmp": 192,
		"choppy":    196,
	}
	for _, f := range VertexSchema {
		if want[f.Name] != f.Offset {
			t.Errorf("field %s at offset %d, want %d", f.Name, f.Offset, want[f.Name])
		}
	}
	if VertexBlockSize != 208 {
		t.Errorf("vertex block size = %d, want 208", VertexBlockSize)
	}
}

func TestSurfaceSchemaOffsets(t *testing.T) {
	want := map[string]int{
		"camPos":             0,
		"sunDir":             16,
		"sunColor":           32,
		"terrainDepth":       48,
		"skyIntensity":       52,
		"specularIntensity":  56,
		"specularHighlights": 60,
		"absorpCoef":         64,
		"scatterCoef":        80,
		"backscatterCoef":    96,
	}
	for _, f := range SurfaceSchema {
		if want[f.Name] != f.Offset {
			t.Errorf("field %s at offset %d, want %d", f.Name, f.Offset, want[f.Name])
		}
	}
	if SurfaceBlockSize != 112 {
		t.Errorf("surface block size = %d, want 112", SurfaceBlockSize)
	}
}

func TestSchemaFieldsDoNotOverlap(t *testing.T) {
	for _, schema := range [][]Field{VertexSchema, SurfaceSchema} {
		for i := 1; i < len(schema); i++ {
			prev, cur := schema[i-1], schema[i]
			if prev.Offset+prev.Size > cur.Offset {
				t.Errorf("field %s (end %d) overlaps %s (start %d)",
					prev.Name, prev.Offset+prev.Size, cur.Name, cur.Offset)
			}
		}
	}
}

func readF32(buf []byte, off int) float32 {
	return gomath.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestVertexPack(t *testing.T) {
	d := VertexData{
		Model:     math.Identity(),
		View:      math.Translate(1, 2, 3),
		Proj:      math.Identity(),
		HeightAmp: 4.5,
		Choppy:    -1,
	}
	buf := make([]byte, VertexBlockSize)
	d.Pack(buf)

	if got := readF32(buf, 0); got != 1 {
		t.Errorf("model[0][0] = %v, want 1", got)
	}
	// Column-major translation column of the view matrix at offset 64+48.
	if got := readF32(buf, 64+48); got != 1 {
		t.Errorf("view tx = %v, want 1", got)
	}
	if got := readF32(buf, 64+52); got != 2 {
		t.Errorf("view ty = %v, want 2", got)
	}
	if got := readF32(buf, 192); got != 4.5 {
		t.Errorf("heightAmp = %v, want 4.5", got)
	}
	if got := readF32(buf, 196); got != -1 {
		t.Errorf("choppy = %v, want -1", got)
	}
}

func TestSurfacePack(t *testing.T) {
	d := SurfaceData{
		CamPos:             math.Vec3{X: 1, Y: 2, Z: 3},
		SunDir:             math.Vec3{X: 0, Y: 1, Z: 0},
		SunColor:           math.Vec4{X: 1, Y: 0.9, Z: 0.8, W: 2},
		TerrainDepth:       60,
		SkyIntensity:       1.5,
		SpecularIntensity:  0.6,
		SpecularHighlights: 32,
		AbsorpCoef:         math.Vec3{X: 0.45, Y: 0.06, Z: 0.02},
		ScatterCoef:        math.Vec3{X: 0.014, Y: 0.045, Z: 0.059},
		BackscatterCoef:    math.Vec3{X: 0.002, Y: 0.006, Z: 0.009},
	}
	buf := make([]byte, SurfaceBlockSize)
	d.Pack(buf)

	if got := readF32(buf, 0); got != 1 {
		t.Errorf("camPos.x = %v", got)
	}
	if got := readF32(buf, 16+4); got != 1 {
		t.Errorf("sunDir.y = %v", got)
	}
	if got := readF32(buf, 32+12); got != 2 {
		t.Errorf("sunColor.w = %v", got)
	}
	if got := readF32(buf, 48); got != 60 {
		t.Errorf("terrainDepth = %v", got)
	}
	if got := readF32(buf, 60); got != 32 {
		t.Errorf("specularHighlights = %v", got)
	}
	if got := readF32(buf, 96+8); got != float32(0.009) {
		t.Errorf("backscatterCoef.z = %v", got)
	}
}
