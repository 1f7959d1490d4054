package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

var (
	mu            sync.RWMutex
	defaultLogger = newConsoleLogger(os.Stderr, slog.LevelInfo, false)
)

// Default returns the process-wide logger
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// NewConsoleLogger builds a human-readable logger for terminal output
func NewConsoleLogger(w io.Writer, level slog.Level, source bool) *slog.Logger {
	return newConsoleLogger(w, level, source)
}

func newConsoleLogger(w io.Writer, level slog.Level, source bool) *slog.Logger {
	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithSource(source),
		clog.WithReplaceAttr(redactor()),
	)
	return slog.New(handler)
}

// NewJSONLogger builds a machine-readable logger for structured collection
func NewJSONLogger(w io.Writer, level slog.Level, source bool) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   source,
		Level:       level,
		ReplaceAttr: redactor(),
	}))
}

// redactor masks secret material in log records
func redactor() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("Secret"),
		masq.WithFieldName("TokenSecret"),
		masq.WithFieldPrefix("secret_"),
	)
}

type ctxKey struct{}

// With attaches a logger to the context
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From retrieves the logger attached to the context, falling back to the
// process default
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
