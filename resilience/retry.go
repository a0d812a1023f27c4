package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"apigee-gateway/errors"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the delay before the second attempt.
	BaseDelay time.Duration
	// MaxDelay caps the computed delay before jitter is added.
	MaxDelay time.Duration
	// Multiplier is the exponential backoff factor.
	Multiplier float64
	// JitterFraction adds a random delay in [0, delay*JitterFraction).
	JitterFraction float64
	// Classify decides whether a failure is worth another attempt.
	// Defaults to errors.Classify.
	Classify func(error) errors.Class
	// OnRetry is called before each re-attempt sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultRetryConfig returns the defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Classify:       errors.Classify,
	}
}

// Retry attempts fn up to cfg.MaxAttempts times. Only failures the Classify
// function marks retryable trigger another attempt; fatal failures propagate
// immediately without consuming the remaining attempts. Between attempts the
// calling goroutine sleeps cooperatively: context cancellation interrupts
// the delay and surfaces ctx.Err().
//
// When all attempts are exhausted the last error is returned, classified and
// augmented with details.attempts.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	if cfg.Classify == nil {
		cfg.Classify = errors.Classify
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.Classify(err) == errors.ClassFatal {
			return zero, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := backoffDelay(attempt, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, errors.FromError(lastErr).WithDetail("attempts", cfg.MaxAttempts)
}

// backoffDelay computes the delay after a failed attempt: the delay before
// attempt n (n > 1) is BaseDelay * Multiplier^(n-2), clamped to MaxDelay,
// plus random jitter in [0, delay*JitterFraction).
func backoffDelay(completedAttempt int, cfg RetryConfig) time.Duration {
	exponent := float64(completedAttempt - 1)
	delay := float64(cfg.BaseDelay) * math.Pow(cfg.Multiplier, exponent)

	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.JitterFraction > 0 {
		delay += rand.Float64() * delay * cfg.JitterFraction
	}

	return time.Duration(delay)
}
