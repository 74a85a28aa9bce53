package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Simulation defaults
	if cfg.Simulation.TileSize != 512 {
		t.Errorf("expected tile size 512, got %d", cfg.Simulation.TileSize)
	}
	if cfg.Simulation.TileLength != 1000 {
		t.Errorf("expected tile length 1000, got %v", cfg.Simulation.TileLength)
	}
	if cfg.Simulation.PhillipsConst != 3e-7 {
		t.Errorf("expected phillips constant 3e-7, got %v", cfg.Simulation.PhillipsConst)
	}
	if cfg.Simulation.Lambda != -1 {
		t.Errorf("expected lambda -1, got %v", cfg.Simulation.Lambda)
	}
	if cfg.Simulation.AnimSpeed != 1 {
		t.Errorf("expected anim speed 1, got %v", cfg.Simulation.AnimSpeed)
	}
	if !cfg.Simulation.ComputeJacobian {
		t.Error("expected compute_jacobian to be true by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  mipmapping: true
simulation:
  tile_size: 256
  wind_speed: 12.5
logging:
  level: debug
`
	path := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Mipmapping {
		t.Error("expected mipmapping true from file")
	}
	if cfg.Simulation.TileSize != 256 {
		t.Errorf("expected tile size 256, got %d", cfg.Simulation.TileSize)
	}
	if cfg.Simulation.WindSpeed != 12.5 {
		t.Errorf("expected wind speed 12.5, got %v", cfg.Simulation.WindSpeed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Values not present in the file keep their defaults.
	if cfg.Simulation.TileLength != 1000 {
		t.Errorf("expected tile length default 1000, got %v", cfg.Simulation.TileLength)
	}
	if cfg.Simulation.Lambda != -1 {
		t.Errorf("expected lambda default -1, got %v", cfg.Simulation.Lambda)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_save_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := Default()
	cfg.Simulation.TileSize = 128
	cfg.Simulation.Damping = 0.4
	cfg.Graphics.DoubleBuffer = true

	path := filepath.Join(tempDir, "sub", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if loaded.Simulation.TileSize != 128 {
		t.Errorf("expected tile size 128 after round trip, got %d", loaded.Simulation.TileSize)
	}
	if loaded.Simulation.Damping != 0.4 {
		t.Errorf("expected damping 0.4 after round trip, got %v", loaded.Simulation.Damping)
	}
	if !loaded.Graphics.DoubleBuffer {
		t.Error("expected double_buffer true after round trip")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
