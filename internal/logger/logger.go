// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type runIDKey struct{}

// Setup installs a text or json slog handler writing to w as the default
// logger and returns it. Unknown levels fall back to warn so that progress
// output is not interleaved with routine log lines.
func Setup(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewRunID returns a fresh identifier for one analysis run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID stores id in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run identifier stored in ctx, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// FromContext returns the default logger tagged with the run ID in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id := RunID(ctx); id != "" {
		l = l.With("run_id", id)
	}
	return l
}

// WithComponent returns l tagged with a component name.
func WithComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With("component", component)
}
