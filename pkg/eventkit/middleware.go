package eventkit

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"
)

// Invocation describes one handler call within a dispatch pass.
// Middleware receives it for identification and logging; Args is the
// dispatched argument list and must not be mutated.
type Invocation struct {
	// Category is the dispatched event category.
	Category any
	// HandlerID identifies the registration being invoked.
	HandlerID HandlerID
	// Priority is the registration's priority.
	Priority int
	// Args are the dispatched arguments.
	Args []any
}

// InvokeFunc performs one handler invocation.
type InvokeFunc func(ctx context.Context, inv *Invocation) error

// Middleware wraps handler invocations with cross-cutting behavior.
// Installed with WithMiddleware; applied around every handler the
// dispatcher invokes, first middleware outermost.
type Middleware func(next InvokeFunc) InvokeFunc

// chainMiddleware applies middleware in order, with first middleware outermost.
func chainMiddleware(call InvokeFunc, middleware []Middleware) InvokeFunc {
	// Apply in reverse order so first middleware is outermost
	for i := len(middleware) - 1; i >= 0; i-- {
		call = middleware[i](call)
	}
	return call
}

// RecoveryMiddleware converts handler panics into *PanicError results.
// Without it a panicking handler unwinds through Dispatch to the caller.
func RecoveryMiddleware() Middleware {
	return func(next InvokeFunc) InvokeFunc {
		return func(ctx context.Context, inv *Invocation) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{
						Category:  inv.Category,
						HandlerID: inv.HandlerID,
						Value:     r,
						Stack:     string(debug.Stack()),
					}
				}
			}()
			return next(ctx, inv)
		}
	}
}

// LoggingMiddleware logs every handler invocation at Debug level with its
// duration and outcome. A nil logger disables it.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next InvokeFunc) InvokeFunc {
		return func(ctx context.Context, inv *Invocation) error {
			start := time.Now()
			err := next(ctx, inv)
			if logger != nil {
				attrs := []any{
					slog.Any("category", inv.Category),
					slog.Uint64("handler_id", uint64(inv.HandlerID)),
					slog.Int("priority", inv.Priority),
					slog.Duration("elapsed", time.Since(start)),
				}
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
				}
				logger.Debug("handler invoked", attrs...)
			}
			return err
		}
	}
}

// SlowHandlerMiddleware warns when a single handler runs longer than
// threshold. Useful for finding handlers that stall dispatch passes.
func SlowHandlerMiddleware(logger *slog.Logger, threshold time.Duration) Middleware {
	return func(next InvokeFunc) InvokeFunc {
		return func(ctx context.Context, inv *Invocation) error {
			start := time.Now()
			err := next(ctx, inv)
			if elapsed := time.Since(start); elapsed > threshold && logger != nil {
				logger.Warn("slow handler",
					slog.Any("category", inv.Category),
					slog.Uint64("handler_id", uint64(inv.HandlerID)),
					slog.Duration("elapsed", elapsed),
					slog.Duration("threshold", threshold),
				)
			}
			return err
		}
	}
}
