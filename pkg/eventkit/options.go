package eventkit

import (
	"log/slog"

	"github.com/randalmurphal/eventkit/pkg/eventkit/journal"
	"github.com/randalmurphal/eventkit/pkg/eventkit/observability"
)

// settings holds dispatcher-wide configuration assembled from Options.
type settings struct {
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	spans      observability.SpanManager
	journal    journal.Store
	middleware []Middleware
}

// Option configures a Dispatcher at construction.
type Option func(*settings)

// WithLogger attaches a structured logger. Dispatch passes log at Debug,
// signature mismatches and journal failures at Warn, failed passes at
// Error. Default: no logging.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	d := eventkit.New[Category](eventkit.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics attaches a metrics recorder. Each dispatch pass and each
// handler invocation is recorded. Default: disabled.
//
// Example:
//
//	d := eventkit.New[Category](eventkit.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithTracing attaches a span manager. Each dispatch pass that finds
// handlers runs inside its own span. Default: disabled.
func WithTracing(sm observability.SpanManager) Option {
	return func(s *settings) {
		s.spans = sm
	}
}

// WithJournal attaches a dispatch journal. One record is appended after
// each pass that found at least one registered handler. Append failures
// are logged at Warn and never fail the dispatch. Default: disabled.
func WithJournal(store journal.Store) Option {
	return func(s *settings) {
		s.journal = store
	}
}

// WithMiddleware installs middleware around every handler invocation,
// first listed outermost. The middleware set is fixed at construction.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *settings) {
		s.middleware = append(s.middleware, mw...)
	}
}

// RegisterOption configures a single registration.
type RegisterOption func(*registration)

// WithPriority sets a registration's priority. Higher priorities dispatch
// first; equal priorities dispatch in registration order. Any int is
// valid. Default: 0.
//
// Example:
//
//	id := d.Register(cat, eventkit.On1(fn), eventkit.WithPriority(10))
func WithPriority(p int) RegisterOption {
	return func(r *registration) {
		r.priority = p
	}
}
