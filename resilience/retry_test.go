package resilience

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"apigee-gateway/errors"
)

func fastRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    maxAttempts,
		BaseDelay:      time.Millisecond,
		MaxDelay:       10 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0,
		Classify:       errors.Classify,
	}
}

func TestRetry_FirstAttemptSuccess(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastRetryConfig(3), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %q", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_RecoversOnLaterAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastRetryConfig(3), func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.ExternalService("apigee", "transient", 503)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "ok" || calls != 3 {
		t.Errorf("expected ok after 3 calls, got %q after %d", result, calls)
	}
}

func TestRetry_ExhaustionReportsAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetryConfig(3), func(context.Context) (string, error) {
		calls++
		return "", errors.Timeout("GET /orgs")
	})

	if calls != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", calls)
	}
	appErr, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected classified error, got %v", err)
	}
	if appErr.Kind != errors.KindTimeout {
		t.Errorf("expected last error to surface, got %s", appErr.Kind)
	}
	if got := appErr.Details["attempts"]; got != 3 {
		t.Errorf("expected details.attempts == 3, got %v", got)
	}
}

func TestRetry_FatalShortCircuits(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetryConfig(3), func(context.Context) (string, error) {
		calls++
		return "", errors.Validation("bad payload")
	})

	if calls != 1 {
		t.Fatalf("fatal failure was retried: %d attempts", calls)
	}
	if !errors.IsKind(err, errors.KindValidation) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
	if appErr, _ := errors.As(err); appErr.Details["attempts"] != nil {
		t.Error("fatal failure must not carry details.attempts")
	}
}

func TestRetry_ContextCancellationInterruptsDelay(t *testing.T) {
	cfg := fastRetryConfig(10)
	cfg.BaseDelay = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	_, err := Retry(ctx, cfg, func(context.Context) (string, error) {
		calls++
		return "", errors.ExternalService("apigee", "down", 503)
	})

	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if calls >= 10 {
		t.Errorf("expected early abort, got %d attempts", calls)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("delay not interrupted, took %v", elapsed)
	}
}

func TestRetry_OnRetryHook(t *testing.T) {
	var attempts []int
	cfg := fastRetryConfig(3)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	}

	_, _ = Retry(context.Background(), cfg, func(context.Context) (string, error) {
		return "", errors.Timeout("op")
	})

	// The hook fires before each re-attempt: after attempts 1 and 2.
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("expected hook after attempts [1 2], got %v", attempts)
	}
}

func TestBackoffDelay_GrowthAndClamp(t *testing.T) {
	cfg := RetryConfig{
		BaseDelay:      time.Second,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0,
	}

	cases := []struct {
		completedAttempt int
		want             time.Duration
	}{
		{1, time.Second},      // delay before attempt 2 = base
		{2, 2 * time.Second},  // base * 2^1
		{3, 4 * time.Second},  // base * 2^2
		{4, 5 * time.Second},  // clamped to max
		{10, 5 * time.Second}, // still clamped
	}
	for _, tc := range cases {
		if got := backoffDelay(tc.completedAttempt, cfg); got != tc.want {
			t.Errorf("attempt %d: expected %v, got %v", tc.completedAttempt, tc.want, got)
		}
	}
}

func TestBackoffDelay_JitterBounds(t *testing.T) {
	cfg := RetryConfig{
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.5,
	}

	for i := 0; i < 100; i++ {
		got := backoffDelay(1, cfg)
		if got < time.Second || got > 1500*time.Millisecond {
			t.Fatalf("jittered delay out of [1s, 1.5s]: %v", got)
		}
	}
}
