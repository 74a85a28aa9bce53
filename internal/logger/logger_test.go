package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logger_level_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
			excluded: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			cfg := FileConfig{
				Path:       logFile,
				MaxSizeMB:  10,
				MaxBackups: 1,
				MaxAgeDays: 1,
				Compress:   false,
			}

			log, err := NewWithFileConfig(tt.level, cfg, false)
			if err != nil {
				t.Fatalf("failed to build logger: %v", err)
			}

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")
			_ = log.Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestRotation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "logger_rotation_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	logFile := filepath.Join(tempDir, "test.log")
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1, // smallest lumberjack allows
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}

	log, err := NewWithFileConfig("debug", cfg, false)
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	// Exceed 1MB to force at least one rotation.
	longMessage := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		log.Sugar().Infof("entry %d: %s", i, longMessage)
	}
	_ = log.Sync()

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}
	count := 0
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "test") && strings.Contains(f.Name(), ".log") {
			count++
		}
	}
	if count < 2 {
		t.Errorf("expected at least 2 log files after rotation, got %d", count)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 50 {
		t.Errorf("expected MaxSizeMB 50, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays != 7 {
		t.Errorf("expected MaxAgeDays 7, got %d", cfg.MaxAgeDays)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
