package logger

import (
	"context"
	"log/slog"
)

// loggerKey is the context key under which a request-scoped logger travels.
type loggerKey struct{}

// WithLogger returns a new context carrying the given logger. Handlers and
// middleware use this to propagate request-scoped attributes (trace IDs)
// down into stores and services.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext retrieves the logger from the context, or nil if none is set.
func FromContext(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return logger
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default. A nil default falls back to slog.Default().
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
