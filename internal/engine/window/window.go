// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title        string
	Width        int
	Height       int
	Fullscreen   bool
	VSync        bool
	DoubleBuffer bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	log       *zap.Logger
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a new window with OpenGL context.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{
		log:    log,
		config: cfg,
	}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	doubleBuffer := 0
	if cfg.DoubleBuffer {
		doubleBuffer = 1
	}
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, doubleBuffer)

	// Depth buffer
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	// Create window with OpenGL flag
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	// Create OpenGL context
	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// Enable VSync
	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetDrawableSize returns the framebuffer size in pixels, which differs
// from the window size on high-DPI displays.
func (w *Window) GetDrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// CaptureMouse toggles relative mouse mode, hiding the cursor and
// delivering unbounded relative motion while captured.
func (w *Window) CaptureMouse(captured bool) {
	sdl.SetRelativeMouseMode(captured)
}
