// Package logger builds structured zap loggers. There is deliberately no
// package-level logger; callers receive a *zap.Logger and thread it (or a
// Named child) through component constructors.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// New builds a logger with the given level and optional rotated file output.
func New(level string, logFile string) (*zap.Logger, error) {
	if logFile != "" {
		return NewWithFileConfig(level, DefaultFileConfig(logFile), true)
	}
	return NewWithFileConfig(level, FileConfig{}, true)
}

// NewWithFileConfig builds a logger with custom file configuration.
// Set consoleOutput to false to disable console logging (useful for tests).
func NewWithFileConfig(level string, fileCfg FileConfig, consoleOutput bool) (*zap.Logger, error) {
	lvl := parseLevel(level)

	var cores []zapcore.Core

	// Console output
	if consoleOutput {
		consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})

		consoleCore := zapcore.NewCore(
			consoleEncoder,
			zapcore.AddSync(os.Stdout),
			lvl,
		)
		cores = append(cores, consoleCore)
	}

	// File output (if configured)
	if fileCfg.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   fileCfg.Path,
			MaxSize:    fileCfg.MaxSizeMB,
			MaxBackups: fileCfg.MaxBackups,
			MaxAge:     fileCfg.MaxAgeDays,
			Compress:   fileCfg.Compress,
			LocalTime:  true, // Use local time in rotated filename
		}

		fileEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.ISO8601TimeEncoder,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})

		fileCore := zapcore.NewCore(
			fileEncoder,
			zapcore.AddSync(fileWriter),
			lvl,
		)
		cores = append(cores, fileCore)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
