// Package logger provides structured logging utilities for researchpro.
// It includes environment-aware handler selection and step-scoped loggers.
package logger

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
)

// Initialize sets up the global slog logger based on the environment
func Initialize(env constants.Environment, level slog.Level) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch env {
	case constants.Production:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case constants.Development:
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	default:
		// CLI runs get the compact colored handler
		handler = NewColorHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("logger initialized", "env", env, "level", level)

	return logger
}
