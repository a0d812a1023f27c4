// Package observability provides OpenTelemetry tracing and metrics for
// the gateway.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("apigee-gateway"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "tools.dispatch")
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("apigee-gateway"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("apigee-gateway"))
//
// The Metrics instruments plug into the resilience layer's hooks so
// retries, breaker transitions, and shed requests are all counted.
package observability
