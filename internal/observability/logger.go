// Package observability builds the process logger and Prometheus metrics.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON production logger, or a console logger when
// development is true. level is a zap level name ("debug", "info", ...);
// empty means info.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	return newLogger(level, development, nil)
}

// NewFileLogger is NewLogger writing to path instead of stderr. The TUI uses
// it because the terminal belongs to the interface.
func NewFileLogger(path, level string, development bool) (*zap.Logger, error) {
	return newLogger(level, development, []string{path})
}

func newLogger(level string, development bool, outputs []string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", level, err)
		}
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if len(outputs) > 0 {
		cfg.OutputPaths = outputs
		cfg.ErrorOutputPaths = outputs
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
