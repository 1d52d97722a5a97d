// Package observability provides production-grade observability features
// for eventkit: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with a category field attached.
//
// Example:
//
//	enriched := EnrichLogger(logger, "order.created")
//	enriched.Info("doing work") // includes category
func EnrichLogger(logger *slog.Logger, category string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("category", category),
	)
}

// LogDispatchStart logs the start of a dispatch pass.
func LogDispatchStart(logger *slog.Logger, category string, handlers int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.String("category", category),
		slog.Int("handlers", handlers),
	)
}

// LogDispatchComplete logs successful completion of a dispatch pass.
func LogDispatchComplete(logger *slog.Logger, category string, handlers int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch completed",
		slog.String("category", category),
		slog.Int("handlers", handlers),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDispatchError logs a dispatch pass that returned an error.
func LogDispatchError(logger *slog.Logger, category string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("dispatch failed",
		slog.String("category", category),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSignatureMismatch logs a handler skipped because the dispatched
// arguments did not match its registered types.
func LogSignatureMismatch(logger *slog.Logger, category string, handlerID uint64, want, got string) {
	if logger == nil {
		return
	}
	logger.Warn("handler signature mismatch",
		slog.String("category", category),
		slog.Uint64("handler_id", handlerID),
		slog.String("want", want),
		slog.String("got", got),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, category string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("category", category),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
