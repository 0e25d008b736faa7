package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With stores a logger carrying fields in the returned context.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From returns the logger stored in ctx, or the process logger.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return LoggerWrapper()
}

// Component tags the context logger with the subsystem emitting the records.
func Component(ctx context.Context, name string) context.Context {
	return With(ctx, "component", name)
}
