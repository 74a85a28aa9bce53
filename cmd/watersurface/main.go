// Package main is the entry point for the water surface renderer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kentril0/watersurface/internal/app"
	"github.com/kentril0/watersurface/internal/config"
	"github.com/kentril0/watersurface/internal/engine/profiler"
	"github.com/kentril0/watersurface/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("=== Water Surface ===")
	log.Sugar().Debugf("Config: %+v", cfg)

	if path := config.CPUProfilePath(); path != "" {
		stop, err := profiler.StartCPUProfile(path)
		if err != nil {
			log.Error("cpu profiling unavailable", zap.Error(err))
			os.Exit(1)
		}
		defer stop()
		log.Info("cpu profiling enabled", zap.String("path", path))
	}

	// Create and run the application
	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to create application", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Error("application error", zap.Error(err))
		os.Exit(1)
	}

	// Persist runtime adjustments (tile size, choppy factor) for next start.
	if err := cfg.Save(); err != nil {
		log.Warn("could not save config", zap.Error(err))
	}

	log.Info("application closed normally")
}
