package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

// ContextWithLogger returns a child context carrying the given logger.
// The transport middleware stores a request-scoped logger here so handlers
// log with the request_id attached.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger carried by ctx, or a no-op logger when the
// context holds none (background jobs, tests).
func FromContext(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(contextKey{}).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}
	return l
}
