package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records eventkit metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records a completed dispatch pass with the number of
	// handlers it invoked, its duration, and its error status.
	RecordDispatch(ctx context.Context, category string, handlers int, duration time.Duration, err error)

	// RecordInvocation records a single handler invocation.
	RecordInvocation(ctx context.Context, category string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches        metric.Int64Counter
	dispatchLatency   metric.Float64Histogram
	dispatchErrors    metric.Int64Counter
	dispatchHandlers  metric.Int64Histogram
	invocations       metric.Int64Counter
	invocationLatency metric.Float64Histogram
	invocationErrors  metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventkit")

	dispatches, err := meter.Int64Counter("eventkit.dispatch.count",
		metric.WithDescription("Number of dispatch passes"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("eventkit.dispatch.latency_ms",
		metric.WithDescription("Dispatch pass latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	dispatchErrors, err := meter.Int64Counter("eventkit.dispatch.errors",
		metric.WithDescription("Number of dispatch passes that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	dispatchHandlers, err := meter.Int64Histogram("eventkit.dispatch.handlers",
		metric.WithDescription("Handlers invoked per dispatch pass"),
	)
	if err != nil {
		return nil, err
	}

	invocations, err := meter.Int64Counter("eventkit.handler.invocations",
		metric.WithDescription("Number of handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	invocationLatency, err := meter.Float64Histogram("eventkit.handler.latency_ms",
		metric.WithDescription("Handler invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	invocationErrors, err := meter.Int64Counter("eventkit.handler.errors",
		metric.WithDescription("Number of handler invocation errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:        dispatches,
		dispatchLatency:   dispatchLatency,
		dispatchErrors:    dispatchErrors,
		dispatchHandlers:  dispatchHandlers,
		invocations:       invocations,
		invocationLatency: invocationLatency,
		invocationErrors:  invocationErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records a completed dispatch pass.
func (m *otelMetrics) RecordDispatch(ctx context.Context, category string, handlers int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("category", category),
	}

	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.dispatchHandlers.Record(ctx, int64(handlers), metric.WithAttributes(attrs...))

	if err != nil {
		m.dispatchErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordInvocation records a single handler invocation.
func (m *otelMetrics) RecordInvocation(ctx context.Context, category string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("category", category),
	}

	m.invocations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.invocationLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.invocationErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
