package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContextOr extracts the request logger from the context, returning fallback
// when the request did not pass through the logging middleware.
// A request logger inherits fallback's component name.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	l, ok := ctx.Value(ctxKey{}).(*zap.Logger)
	if !ok {
		return fallback
	}
	if name := fallback.Name(); name != "" && l.Name() == "" {
		return l.Named(name)
	}
	return l
}
