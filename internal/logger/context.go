package logger

import (
	"context"
	"log/slog"
	"time"
)

type contextKey string

const stepContextKey contextKey = "step"

// WithStep returns a context carrying the name of the pipeline step in progress.
func WithStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, stepContextKey, step)
}

// GetStep extracts the current pipeline step name from the context.
func GetStep(ctx context.Context) string {
	if step, ok := ctx.Value(stepContextKey).(string); ok {
		return step
	}

	return ""
}

// DeriveStepLogger returns a logger enriched with the pipeline step recorded
// in the provided context, so every log line inside a step carries its name
// without threading the field through call sites.
func DeriveStepLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}

	if step := GetStep(ctx); step != "" {
		return base.With("step", step)
	}

	return base
}

// GetDeadlineInfo returns logging attributes for context deadline information.
// Returns the absolute deadline time and remaining duration if set, or "none" if no deadline.
func GetDeadlineInfo(ctx context.Context) []any {
	deadline, ok := ctx.Deadline()
	if !ok {
		return []any{"deadline", "none", "deadline_remaining", "none"}
	}

	remaining := time.Until(deadline)
	return []any{
		"deadline", deadline.Format(time.RFC3339),
		"deadline_remaining", remaining.String(),
	}
}
