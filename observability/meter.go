package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"apigee-gateway/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the gateway's metric instruments.
type Metrics struct {
	toolCallTotal    metric.Int64Counter
	toolCallDuration metric.Float64Histogram
	retryTotal       metric.Int64Counter
	breakerChanges   metric.Int64Counter
	rateLimitedTotal metric.Int64Counter
	errorTotal       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	toolCallTotal, err := meter.Int64Counter("tool_call.total",
		metric.WithDescription("Total number of dispatched tool calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tool_call.total counter: %w", err)
	}

	toolCallDuration, err := meter.Float64Histogram("tool_call.duration",
		metric.WithDescription("Duration of tool calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tool_call.duration histogram: %w", err)
	}

	retryTotal, err := meter.Int64Counter("resilience.retry.total",
		metric.WithDescription("Total retry attempts by target key"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resilience.retry.total counter: %w", err)
	}

	breakerChanges, err := meter.Int64Counter("resilience.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions by target key"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resilience.breaker.transitions counter: %w", err)
	}

	rateLimitedTotal, err := meter.Int64Counter("resilience.rate_limited.total",
		metric.WithDescription("Requests shed by the local rate limiter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resilience.rate_limited.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by kind and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		toolCallTotal:    toolCallTotal,
		toolCallDuration: toolCallDuration,
		retryTotal:       retryTotal,
		breakerChanges:   breakerChanges,
		rateLimitedTotal: rateLimitedTotal,
		errorTotal:       errorTotal,
	}, nil
}

// RecordToolCall records a completed tool call. All Record methods are
// no-ops on a nil receiver so callers can skip the telemetry-disabled
// check.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)
	m.toolCallTotal.Add(ctx, 1, attrs)
	m.toolCallDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("tool", tool),
	))
}

// RecordRetry records one retry attempt against a target key.
func (m *Metrics) RecordRetry(ctx context.Context, targetKey string, attempt int) {
	if m == nil {
		return
	}
	m.retryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target_key", targetKey),
		attribute.Int("attempt", attempt),
	))
}

// RecordBreakerTransition records a circuit breaker state change.
func (m *Metrics) RecordBreakerTransition(ctx context.Context, targetKey, from, to string) {
	if m == nil {
		return
	}
	m.breakerChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target_key", targetKey),
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordRateLimited records a request shed by the local limiter.
func (m *Metrics) RecordRateLimited(ctx context.Context, targetKey string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("target_key", targetKey),
	))
}

// RecordError records an error by kind and component.
func (m *Metrics) RecordError(ctx context.Context, kind, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("component", component),
	))
}

// ResilienceHooks builds resilience hooks that feed these instruments.
func (m *Metrics) ResilienceHooks() ResilienceHooks {
	return ResilienceHooks{Metrics: m}
}

// ResilienceHooks adapts Metrics to the resilience layer's hook signatures.
type ResilienceHooks struct {
	Metrics *Metrics
}

// OnStateChange records a breaker transition.
func (h ResilienceHooks) OnStateChange(targetKey, from, to string) {
	if h.Metrics != nil {
		h.Metrics.RecordBreakerTransition(context.Background(), targetKey, from, to)
	}
}

// OnRetry records a retry attempt.
func (h ResilienceHooks) OnRetry(targetKey string, attempt int) {
	if h.Metrics != nil {
		h.Metrics.RecordRetry(context.Background(), targetKey, attempt)
	}
}

// OnRateLimited records a shed request.
func (h ResilienceHooks) OnRateLimited(targetKey string) {
	if h.Metrics != nil {
		h.Metrics.RecordRateLimited(context.Background(), targetKey)
	}
}
