package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// New returns the process logger.
// local/dev get human-readable text at debug level; everything else gets JSON.
func New(appEnv string) *slog.Logger {
	return NewWithWriter(appEnv, os.Stdout)
}

// NewWithWriter is New with an explicit sink, used by tests.
func NewWithWriter(appEnv string, w io.Writer) *slog.Logger {
	if isLocal(appEnv) {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func isLocal(appEnv string) bool {
	return appEnv == "" || appEnv == "local" || appEnv == "dev"
}

type ctxKey struct{}

// With stores a logger in context.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From gets a logger from context, falling back to slog.Default().
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
