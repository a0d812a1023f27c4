// Command gateway runs the Apigee tool-call gateway: an HTTP front
// over the Apigee management API with circuit breaking, retry, and
// rate limiting on every outbound call.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apigee-gateway/apigee"
	"apigee-gateway/auth"
	"apigee-gateway/config"
	"apigee-gateway/logger"
	"apigee-gateway/observability"
	"apigee-gateway/resilience"
	"apigee-gateway/server"
	"apigee-gateway/teams"
	"apigee-gateway/tools"
	"apigee-gateway/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Configuration error", logger.Fields(logger.FieldError, err.Error()))
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("Starting gateway", logger.Fields(
		"name", cfg.Name,
		"version", version.Short(),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Gateway exited with error", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	metrics, shutdownTelemetry, err := initTelemetry(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer shutdownTelemetry()

	invoker := resilience.NewInvoker(cfg.Resilience, resilienceHooks(metrics, log))

	tokens, err := tokenSource(cfg.Apigee)
	if err != nil {
		return err
	}

	client, err := apigee.NewClient(apigee.ClientConfig{
		BaseURL:      cfg.Apigee.BaseURL,
		Organization: cfg.Apigee.Organization,
		ProxyURL:     cfg.Apigee.ProxyURL,
	}, tokens, invoker)
	if err != nil {
		return err
	}

	dispatcher := tools.NewDispatcher(client, teams.NewInMemoryRepository(), metrics, log)

	srv := server.New(cfg.Server, log)
	srv.Routes(dispatcher, invoker, cfg.Name, version.Short())

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// tokenSource picks static-token or service-account authentication
// based on what the configuration provides.
func tokenSource(cfg config.ApigeeConfig) (auth.TokenSource, error) {
	if cfg.AccessToken != "" {
		return &auth.StaticTokenSource{AccessToken: cfg.AccessToken}, nil
	}
	return auth.NewServiceAccountTokenSource(cfg.CredentialsFile, nil)
}

// initTelemetry stands up the OTLP tracer and meter providers when
// telemetry is enabled. With telemetry off it returns nil metrics,
// which every recording path treats as a no-op.
func initTelemetry(ctx context.Context, cfg *config.Config, log *logger.Logger) (*observability.Metrics, func(), error) {
	if !cfg.Telemetry.Enabled {
		return nil, func() {}, nil
	}

	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: version.Short(),
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return nil, nil, err
	}

	meterProvider, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    cfg.Name,
		ServiceVersion: version.Short(),
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Interval:       time.Duration(cfg.Telemetry.IntervalSeconds) * time.Second,
	})
	if err != nil {
		_ = tracerProvider.Shutdown(ctx)
		return nil, nil, err
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Tracer shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Meter shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}
	return metrics, shutdown, nil
}

// resilienceHooks feeds breaker, retry, and shed events into both the
// structured log and the metric instruments.
func resilienceHooks(metrics *observability.Metrics, log *logger.Logger) resilience.Hooks {
	obs := metrics.ResilienceHooks()
	rlog := log.WithComponent("resilience")

	return resilience.Hooks{
		OnStateChange: func(targetKey string, from, to resilience.State) {
			rlog.Warn("Circuit breaker transition", logger.Fields(
				logger.FieldTargetKey, targetKey,
				"from", from.String(),
				"to", to.String(),
			))
			obs.OnStateChange(targetKey, from.String(), to.String())
		},
		OnRetry: func(targetKey string, attempt int, err error, delay time.Duration) {
			rlog.Warn("Retrying upstream call", logger.Fields(
				logger.FieldTargetKey, targetKey,
				logger.FieldAttempt, attempt,
				logger.FieldError, err.Error(),
				"delay_ms", delay.Milliseconds(),
			))
			obs.OnRetry(targetKey, attempt)
		},
		OnRateLimited: func(targetKey string) {
			rlog.Warn("Request shed by local rate limiter", logger.Fields(
				logger.FieldTargetKey, targetKey,
			))
			obs.OnRateLimited(targetKey)
		},
	}
}
