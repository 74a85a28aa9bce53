// Package app wires the simulation, streaming and rendering subsystems
// together and runs the main loop.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/kentril0/watersurface/internal/config"
	"github.com/kentril0/watersurface/internal/engine/camera"
	"github.com/kentril0/watersurface/internal/engine/input"
	"github.com/kentril0/watersurface/internal/engine/mesh"
	"github.com/kentril0/watersurface/internal/engine/profiler"
	"github.com/kentril0/watersurface/internal/engine/renderer"
	"github.com/kentril0/watersurface/internal/engine/stream"
	"github.com/kentril0/watersurface/internal/engine/uniform"
	"github.com/kentril0/watersurface/internal/engine/window"
	"github.com/kentril0/watersurface/internal/sim"
	"github.com/kentril0/watersurface/pkg/math"
)

const lambdaStep = 0.1

// Overlay receives input while GUI focus is held and draws after the
// water pass. The default build runs without one.
type Overlay interface {
	// HandleEvent consumes an input event; returning true stops further
	// propagation.
	HandleEvent(ev input.Event) bool
	// Draw renders the overlay at the end of the frame.
	Draw()
}

// App is the main application instance.
type App struct {
	log     *zap.Logger
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	streamer *stream.Streamer
	mesh     *mesh.Mesh
	surface  *sim.Surface
	camera   *camera.FreeCamera
	input    *input.Input
	overlay  Overlay

	prof      *profiler.Profiler
	secUpdate profiler.SectionID
	secStage  profiler.SectionID
	secRender profiler.SectionID

	focus   input.Focus
	paused  bool
	simTime float64
	lambda  float64
}

// New creates an application instance from the loaded configuration. The
// window and GL context come up first, then the GPU-side resources, then
// the CPU simulation.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	a := &App{
		log:    log,
		cfg:    cfg,
		focus:  input.GuiControls,
		lambda: cfg.Simulation.Lambda,
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:        "Water Surface",
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		DoubleBuffer: true,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	}, log)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.streamer, err = stream.New(stream.Config{
		TileSize:     cfg.Simulation.TileSize,
		Mipmapping:   cfg.Graphics.Mipmapping,
		DoubleBuffer: cfg.Graphics.DoubleBuffer,
	}, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create streamer: %w", err)
	}

	a.mesh = mesh.New(log)
	a.mesh.SetTile(cfg.Simulation.TileSize, float32(cfg.Simulation.TileLength))

	a.surface, err = sim.NewSurface(simParams(cfg), log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build wave surface: %w", err)
	}

	a.camera = camera.New()
	a.camera.FOV = cfg.Camera.FOVDegrees * gomath.Pi / 180
	a.camera.Near = cfg.Camera.Near
	a.camera.Far = cfg.Camera.Far
	a.camera.MoveSpeed = cfg.Camera.MoveSpeed
	a.camera.Sensitivity = cfg.Camera.Sensitivity
	a.camera.SetAspect(a.window.GetDrawableSize())

	a.input = input.New()
	a.window.CaptureMouse(a.focus.Captured())

	a.prof = profiler.New(log, cfg.Profiling.Enabled,
		time.Duration(cfg.Profiling.IntervalSeconds*float64(time.Second)))
	a.secUpdate = a.prof.Section("update")
	a.secStage = a.prof.Section("stage")
	a.secRender = a.prof.Section("render")

	a.applySurfaceConfig()

	log.Info("application initialized",
		zap.Int("tile_size", cfg.Simulation.TileSize),
		zap.Float64("tile_length", cfg.Simulation.TileLength),
	)
	return a, nil
}

// SetOverlay installs a GUI overlay. Pass nil to remove it.
func (a *App) SetOverlay(o Overlay) {
	a.overlay = o
}

// Run starts the main loop and blocks until quit.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.moveCamera(float32(dt))

		if !a.paused {
			a.simTime += a.cfg.Simulation.AnimSpeed * dt
		}

		a.prof.Begin(a.secUpdate)
		a.surface.Update(a.simTime)
		a.prof.End(a.secUpdate)

		a.prof.Begin(a.secStage)
		if err := a.streamer.Stage(a.surface.Displacement(), a.surface.Normal()); err != nil {
			return fmt.Errorf("stage frame: %w", err)
		}
		a.streamer.Upload()
		a.prof.End(a.secStage)

		a.prof.Begin(a.secRender)
		a.render()
		a.prof.End(a.secRender)

		a.window.SwapBuffers()
		a.prof.Tick()
	}

	return nil
}

// Close releases all resources in reverse creation order.
func (a *App) Close() {
	a.log.Info("shutting down")

	if a.streamer != nil {
		a.streamer.Destroy()
	}
	if a.mesh != nil {
		a.mesh.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		if a.focus == input.GuiControls && a.overlay != nil && a.overlay.HandleEvent(ev) {
			continue
		}

		switch ev.Type {
		case input.EventWindowResize:
			w, h := a.window.GetDrawableSize()
			a.renderer.Resize(w, h)
			a.camera.SetAspect(w, h)

		case input.EventMouseMove:
			if a.focus == input.CameraControls {
				a.camera.HandleMouse(float32(ev.RelX), float32(ev.RelY))
			}

		case input.EventKeyDown:
			a.handleKey(ev.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.focus = a.focus.Toggle()
		a.window.CaptureMouse(a.focus.Captured())

	case sdl.SCANCODE_SPACE:
		a.paused = !a.paused

	case sdl.SCANCODE_LEFTBRACKET:
		a.cycleTileSize(-1)
	case sdl.SCANCODE_RIGHTBRACKET:
		a.cycleTileSize(+1)

	case sdl.SCANCODE_COMMA:
		a.adjustLambda(-lambdaStep)
	case sdl.SCANCODE_PERIOD:
		a.adjustLambda(+lambdaStep)
	}
}

func (a *App) moveCamera(dt float32) {
	if a.focus != input.CameraControls {
		return
	}

	var forward, right, up float32
	if a.input.Held(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.Held(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.Held(sdl.SCANCODE_D) {
		right++
	}
	if a.input.Held(sdl.SCANCODE_A) {
		right--
	}
	if a.input.Held(sdl.SCANCODE_E) {
		up++
	}
	if a.input.Held(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		a.camera.Move(forward, right, up, dt)
	}
}

// cycleTileSize steps the simulation grid to the next or previous power
// of two. In-flight GPU work is drained first so the staging buffer and
// textures can be resized safely.
func (a *App) cycleTileSize(dir int) {
	n := a.surface.Size()
	if dir > 0 {
		n *= 2
	} else {
		n /= 2
	}
	if n < sim.MinTileSize || n > sim.MaxTileSize {
		return
	}

	gl.Finish()

	p := a.surface.Params()
	p.TileSize = n
	if err := a.surface.Reconfigure(p); err != nil {
		a.log.Error("tile resize rejected", zap.Int("tile_size", n), zap.Error(err))
		return
	}
	if err := a.streamer.Resize(n); err != nil {
		a.log.Error("texture resize failed", zap.Int("tile_size", n), zap.Error(err))
		a.running = false
		return
	}
	a.mesh.SetTile(n, float32(p.TileLength))
	a.cfg.Simulation.TileSize = n
	a.renderer.Binding().MarkDirty()

	a.log.Info("tile size changed", zap.Int("tile_size", n))
}

func (a *App) adjustLambda(delta float64) {
	l := a.lambda + delta
	if l > 0 {
		l = 0
	}
	if l < -2 {
		l = -2
	}
	a.lambda = l
	a.surface.SetLambda(l)
	a.cfg.Simulation.Lambda = l
	a.log.Info("choppy factor changed", zap.Float64("lambda", l))
}

func (a *App) render() {
	b := a.renderer.Binding()

	b.Vertex = uniform.VertexData{
		Model:     math.Identity(),
		View:      a.camera.ViewMatrix(),
		Proj:      a.camera.ProjMatrix(),
		HeightAmp: a.surface.Amplitude(),
		Choppy:    float32(a.lambda),
	}

	if b.Surface.CamPos != a.camera.Pos {
		b.Surface.CamPos = a.camera.Pos
		b.MarkDirty()
	}

	a.renderer.Begin()
	a.renderer.DrawWater(a.mesh, a.streamer)
	if a.overlay != nil {
		a.overlay.Draw()
	}
}

// applySurfaceConfig copies the shading settings into the surface uniform
// block. Called at startup and whenever the overlay edits them.
func (a *App) applySurfaceConfig() {
	s := a.cfg.Surface
	b := a.renderer.Binding()

	b.Surface = uniform.SurfaceData{
		CamPos:             a.camera.Pos,
		SunDir:             vec3(s.SunDir),
		SunColor:           math.Vec4{X: s.SunColor[0], Y: s.SunColor[1], Z: s.SunColor[2], W: s.SunIntensity},
		TerrainDepth:       s.TerrainDepth,
		SkyIntensity:       s.SkyIntensity,
		SpecularIntensity:  s.SpecularIntensity,
		SpecularHighlights: s.SpecularHighlights,
		AbsorpCoef:         vec3(s.AbsorpCoef),
		ScatterCoef:        vec3(s.ScatterCoef),
		BackscatterCoef:    vec3(s.BackscatterCoef),
	}
	b.MarkDirty()
}

func simParams(cfg *config.Config) sim.Params {
	s := cfg.Simulation
	return sim.Params{
		TileSize:        s.TileSize,
		TileLength:      s.TileLength,
		WindDirX:        s.WindDirX,
		WindDirZ:        s.WindDirZ,
		WindSpeed:       s.WindSpeed,
		PhillipsConst:   s.PhillipsConst,
		Damping:         s.Damping,
		AnimationPeriod: s.AnimationPeriod,
		Lambda:          s.Lambda,
		ComputeJacobian: s.ComputeJacobian,
		Seed:            s.Seed,
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
