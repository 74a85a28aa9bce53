// Package renderer owns the OpenGL state, the water pipeline and the
// uniform/texture bindings the surface is drawn with.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/kentril0/watersurface/internal/engine/mesh"
	"github.com/kentril0/watersurface/internal/engine/shader"
	"github.com/kentril0/watersurface/internal/engine/stream"
	"github.com/kentril0/watersurface/internal/engine/uniform"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	log    *zap.Logger
	config Config

	program uint32
	binding *Binding
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		log:    log.Named("renderer"),
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.52, 0.68, 0.85, 1.0) // Hazy sky at the horizon

	var err error
	r.program, err = shader.CompileProgram(waterVertexShader, waterFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}

	if err := shader.BindUniformBlock(r.program, "VertexBlock", uniform.VertexBinding); err != nil {
		return nil, err
	}
	if err := shader.BindUniformBlock(r.program, "SurfaceBlock", uniform.SurfaceBinding); err != nil {
		return nil, err
	}
	if err := shader.SetSamplerUnit(r.program, "displacementMap", stream.DisplacementUnit); err != nil {
		return nil, err
	}
	if err := shader.SetSamplerUnit(r.program, "normalMap", stream.NormalUnit); err != nil {
		return nil, err
	}

	r.binding = newBinding()
	return r, nil
}

// Binding returns the uniform binding written each frame.
func (r *Renderer) Binding() *Binding {
	return r.binding
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawWater flushes the uniform state and draws the tile with the current
// texture pair bound.
func (r *Renderer) DrawWater(m *mesh.Mesh, s *stream.Streamer) {
	r.binding.flush()
	s.Bind()
	gl.UseProgram(r.program)
	m.Draw()
	gl.UseProgram(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.binding != nil {
		r.binding.destroy()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
