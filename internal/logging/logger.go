// Package logging defines the structured, context-aware logger used by the
// POS client. The only implementation wraps log/slog; the interface exists so
// components and tests never depend on a concrete handler.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are key-value pairs:
//
//	log.Debug(ctx, "GET SUCCESS - User/1", "status", 200)
type Logger interface {
	// Debug logs request traces and other output that is only useful when
	// debug mode is switched on.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
