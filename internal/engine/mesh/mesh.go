package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Mesh owns the GPU-side grid geometry for the water tile. The grid only
// needs regenerating when the resolution or world scale changes.
type Mesh struct {
	log *zap.Logger

	vao uint32
	vbo uint32
	ebo uint32

	n          int
	scale      float32
	indexCount int32
}

// New creates an empty mesh; call SetTile before drawing.
func New(log *zap.Logger) *Mesh {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mesh{log: log.Named("mesh")}
}

// upToDate reports whether the current geometry already matches (n, scale).
func (m *Mesh) upToDate(n int, scale float32) bool {
	return m.vao != 0 && m.n == n && m.scale == scale
}

// SetTile (re)generates the grid for resolution n and world side length
// scale. Calling it again with identical arguments is a no-op. Returns
// whether geometry was rebuilt.
func (m *Mesh) SetTile(n int, scale float32) bool {
	if m.upToDate(n, scale) {
		return false
	}

	vertices, indices := Grid(n, scale)

	if m.vao == 0 {
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		gl.GenBuffers(1, &m.ebo)
	}

	gl.BindVertexArray(m.vao)
	m.uploadVertices(vertices)
	m.uploadIndices(indices)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, VertexStride*4, 0)
	gl.EnableVertexAttribArray(0)

	// UV attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, VertexStride*4, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	m.n = n
	m.scale = scale
	m.indexCount = int32(len(indices))

	m.log.Debug("tile mesh rebuilt",
		zap.Int("resolution", n),
		zap.Float32("scale", scale),
		zap.Int("vertices", len(vertices)/VertexStride),
		zap.Int("indices", len(indices)),
	)
	return true
}

// uploadVertices stages vertex data into the ARRAY_BUFFER.
func (m *Mesh) uploadVertices(vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
}

// uploadIndices stages index data into the ELEMENT_ARRAY_BUFFER. Kept
// separate from the vertex path; index data never goes through it.
func (m *Mesh) uploadIndices(indices []uint32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
}

// Draw issues the indexed draw for the tile.
func (m *Mesh) Draw() {
	if m.vao == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases the GL buffers.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.indexCount = 0
}
