package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/kentril0/watersurface/internal/engine/uniform"
)

// Binding owns the two uniform buffers backing the shader's vertex and
// surface blocks. The vertex block changes every frame (camera, height
// amplitude); the surface block is rewritten only when the dirty flag is
// raised, which happens on construction and whenever an underlying resource
// is recreated.
type Binding struct {
	// Vertex is written by the orchestrator each frame before drawing.
	Vertex uniform.VertexData

	// Surface holds the shading parameters; call MarkDirty after changes.
	Surface uniform.SurfaceData

	vertexUBO  uint32
	surfaceUBO uint32
	dirty      bool

	vbuf [uniform.VertexBlockSize]byte
	sbuf [uniform.SurfaceBlockSize]byte
}

func newBinding() *Binding {
	b := &Binding{dirty: true}

	gl.GenBuffers(1, &b.vertexUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.vertexUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, uniform.VertexBlockSize, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &b.surfaceUBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.surfaceUBO)
	gl.BufferData(gl.UNIFORM_BUFFER, uniform.SurfaceBlockSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	gl.BindBufferBase(gl.UNIFORM_BUFFER, uniform.VertexBinding, b.vertexUBO)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, uniform.SurfaceBinding, b.surfaceUBO)

	return b
}

// MarkDirty forces a surface-block rewrite on the next draw. Raised whenever
// textures or other underlying resources are recreated.
func (b *Binding) MarkDirty() {
	b.dirty = true
}

// flush uploads the vertex block and, when dirty, the surface block.
func (b *Binding) flush() {
	b.Vertex.Pack(b.vbuf[:])
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.vertexUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, uniform.VertexBlockSize, gl.Ptr(&b.vbuf[0]))

	if b.dirty {
		b.Surface.Pack(b.sbuf[:])
		gl.BindBuffer(gl.UNIFORM_BUFFER, b.surfaceUBO)
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, uniform.SurfaceBlockSize, gl.Ptr(&b.sbuf[0]))
		b.dirty = false
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (b *Binding) destroy() {
	if b.vertexUBO != 0 {
		gl.DeleteBuffers(1, &b.vertexUBO)
		b.vertexUBO = 0
	}
	if b.surfaceUBO != 0 {
		gl.DeleteBuffers(1, &b.surfaceUBO)
		b.surfaceUBO = 0
	}
}
