// Package uniform defines the CPU-side layout of the shader uniform blocks.
// Each block is described once as an explicit (field, offset, size) schema
// shared with the GLSL declarations, so the two cannot drift apart.
package uniform

import (
	"encoding/binary"
	gomath "math"

	"github.com/kentril0/watersurface/pkg/math"
)

// Field describes one member of a std140 uniform block.
type Field struct {
	Name   string
	Offset int
	Size   int
}

// Block binding points. The fragment/vertex samplers sit on texture units
// chosen to match: displacement on unit 2, normals on unit 3.
const (
	VertexBinding  = 0
	SurfaceBinding = 1
)

// Vertex block layout (std140): three mat4 then two floats.
const (
	vtxModel     = 0
	vtxView      = 64
	vtxProj      = 128
	vtxHeightAmp = 192
	vtxChoppy    = 196

	// VertexBlockSize is the byte size of the vertex uniform block.
	VertexBlockSize = 208
)

// VertexSchema is the authoritative layout table for the vertex block.
var VertexSchema = []Field{
	{"model", vtxModel, 64},
	{"view", vtxView, 64},
	{"proj", vtxProj, 64},
	{"heightAmp", vtxHeightAmp, 4},
	{"choppy", vtxChoppy, 4},
}

// VertexData holds the per-frame vertex stage uniforms.
type VertexData struct {
	Model     math.Mat4
	View      math.Mat4
	Proj      math.Mat4
	HeightAmp float32
	Choppy    float32
}

// Pack serialises the block into dst, which must be at least
// VertexBlockSize bytes.
func (d *VertexData) Pack(dst []byte) {
	putMat4(dst, vtxModel, &d.Model)
	putMat4(dst, vtxView, &d.View)
	putMat4(dst, vtxProj, &d.Proj)
	putF32(dst, vtxHeightAmp, d.HeightAmp)
	putF32(dst, vtxChoppy, d.Choppy)
}

// Surface block layout (std140): vec3s are 16-byte aligned, the four scalar
// floats pack tightly between sunColor and absorpCoef.
const (
	srfCamPos             = 0
	srfSunDir             = 16
	srfSunColor           = 32
	srfTerrainDepth       = 48
	srfSkyIntensity       = 52
	srfSpecularIntensity  = 56
	srfSpecularHighlights = 60
	srfAbsorpCoef         = 64
	srfScatterCoef        = 80
	srfBackscatterCoef    = 96

	// SurfaceBlockSize is the byte size of the surface uniform block.
	SurfaceBlockSize = 112
)

// SurfaceSchema is the authoritative layout table for the surface block.
var SurfaceSchema = []Field{
	{"camPos", srfCamPos, 12},
	{"sunDir", srfSunDir, 12},
	{"sunColor", srfSunColor, 16},
	{"terrainDepth", srfTerrainDepth, 4},
	{"skyIntensity", srfSkyIntensity, 4},
	{"specularIntensity", srfSpecularIntensity, 4},
	{"specularHighlights", srfSpecularHighlights, 4},
	{"absorpCoef", srfAbsorpCoef, 12},
	{"scatterCoef", srfScatterCoef, 12},
	{"backscatterCoef", srfBackscatterCoef, 12},
}

// SurfaceData holds the fragment stage shading uniforms.
type SurfaceData struct {
	CamPos             math.Vec3
	SunDir             math.Vec3
	SunColor           math.Vec4
	TerrainDepth       float32
	SkyIntensity       float32
	SpecularIntensity  float32
	SpecularHighlights float32
	AbsorpCoef         math.Vec3
	ScatterCoef        math.Vec3
	BackscatterCoef    math.Vec3
}

// Pack serialises the block into dst, which must be at least
// SurfaceBlockSize bytes.
func (d *SurfaceData) Pack(dst []byte) {
	putVec3(dst, srfCamPos, d.CamPos)
	putVec3(dst, srfSunDir, d.SunDir)
	putVec4(dst, srfSunColor, d.SunColor)
	putF32(dst, srfTerrainDepth, d.TerrainDepth)
	putF32(dst, srfSkyIntensity, d.SkyIntensity)
	putF32(dst, srfSpecularIntensity, d.SpecularIntensity)
	putF32(dst, srfSpecularHighlights, d.SpecularHighlights)
	putVec3(dst, srfAbsorpCoef, d.AbsorpCoef)
	putVec3(dst, srfScatterCoef, d.ScatterCoef)
	putVec3(dst, srfBackscatterCoef, d.BackscatterCoef)
}

func putF32(dst []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(dst[off:], gomath.Float32bits(v))
}

func putVec3(dst []byte, off int, v math.Vec3) {
	putF32(dst, off, v.X)
	putF32(dst, off+4, v.Y)
	putF32(dst, off+8, v.Z)
}

func putVec4(dst []byte, off int, v math.Vec4) {
	putF32(dst, off, v.X)
	putF32(dst, off+4, v.Y)
	putF32(dst, off+8, v.Z)
	putF32(dst, off+12, v.W)
}

func putMat4(dst []byte, off int, m *math.Mat4) {
	for i, v := range m {
		putF32(dst, off+4*i, v)
	}
}
