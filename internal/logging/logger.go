// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog (SlogLogger) and zap (ZapLogger).
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request finished", "method", "GET", "status", 200)
type Logger interface {
	// Debug logs low-level diagnostics (request traces, discarded responses).
	Debug(ctx context.Context, msg string, args ...any)
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)
	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)
	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// New builds the process logger. Format "json" selects the zap backend,
// anything else a slog text handler on stderr. Unknown levels fall back to info.
func New(format, level string) (Logger, error) {
	if strings.EqualFold(format, "json") {
		return NewZapLogger(level)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	return NewSlogLogger(slog.New(h)), nil
}
