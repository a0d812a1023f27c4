package resilience

import (
	"context"
	"testing"
	"time"

	"apigee-gateway/errors"
)

// testInvoker builds an invoker with millisecond retry delays so tests that
// exhaust attempts finish quickly.
func testInvoker(cfg Config) *Invoker {
	inv := NewInvoker(cfg, Hooks{})
	inv.retryBaseDelay = time.Millisecond
	inv.retryMaxDelay = 5 * time.Millisecond
	return inv
}

func failingOp(appErr *errors.Error) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return "", appErr }
}

func TestInvoke_Success(t *testing.T) {
	inv := testInvoker(Config{})

	result, corrID, err := Invoke(context.Background(), inv, "apigee.orgs",
		func(context.Context) (string, error) { return "ok", nil })
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if result != "ok" {
		t.Errorf("expected ok, got %q", result)
	}
	if corrID == "" {
		t.Error("expected a correlation ID on success")
	}
}

func TestInvoke_RateLimiterGateIsFirst(t *testing.T) {
	inv := testInvoker(Config{RateLimitRequests: 2, RateLimitWindowSeconds: 60})

	op := func(context.Context) (string, error) { return "ok", nil }
	_, _, _ = Invoke(context.Background(), inv, "apigee.orgs", op)
	_, _, _ = Invoke(context.Background(), inv, "apigee.orgs", op)

	var invoked bool
	_, _, err := Invoke(context.Background(), inv, "apigee.orgs",
		func(context.Context) (string, error) {
			invoked = true
			return "ok", nil
		})

	if invoked {
		t.Error("operation ran despite rate-limit rejection")
	}
	appErr, ok := errors.As(err)
	if !ok || appErr.Kind != errors.KindRateLimited {
		t.Fatalf("expected RATE_LIMITED, got %v", err)
	}
	if appErr.Details["retry_after"] == nil {
		t.Error("expected retry_after detail")
	}
	if appErr.CorrelationID == "" {
		t.Error("rate-limit error missing correlation ID")
	}

	// Shed load must not count against breaker health.
	if state, tracked := inv.BreakerState("apigee.orgs"); tracked && state != StateClosed {
		t.Errorf("breaker affected by rate limiting: %s", state)
	}
}

func TestInvoke_RetryStormCountsOnceForBreaker(t *testing.T) {
	// threshold 2: two logical calls (each exhausting 3 attempts) open
	// the breaker; individual attempts must not.
	inv := testInvoker(Config{FailureThreshold: 2, MaxRetries: 3})

	calls := 0
	op := func(context.Context) (string, error) {
		calls++
		return "", errors.ExternalService("apigee", "flapping", 503)
	}

	_, _, _ = Invoke(context.Background(), inv, "apigee.proxies", op)

	if state, _ := inv.BreakerState("apigee.proxies"); state != StateClosed {
		t.Fatalf("breaker opened after one logical call: %s", state)
	}

	_, _, _ = Invoke(context.Background(), inv, "apigee.proxies", op)

	if state, _ := inv.BreakerState("apigee.proxies"); state != StateOpen {
		t.Fatalf("breaker should open after two logical failures, got %s", state)
	}
	if calls != 6 {
		t.Errorf("expected 3 attempts per logical call (6 total), got %d", calls)
	}

	// The next invocation short-circuits without touching the operation.
	before := calls
	_, _, err := Invoke(context.Background(), inv, "apigee.proxies", op)
	if !errors.IsKind(err, errors.KindCircuitOpen) {
		t.Errorf("expected CIRCUIT_OPEN, got %v", err)
	}
	if calls != before {
		t.Error("operation invoked while circuit open")
	}
}

func TestInvoke_FatalFailureSingleAttempt(t *testing.T) {
	inv := testInvoker(Config{MaxRetries: 3})

	calls := 0
	_, _, err := Invoke(context.Background(), inv, "apigee.orgs",
		func(context.Context) (string, error) {
			calls++
			return "", errors.NotFound("organization", "acme")
		})

	if calls != 1 {
		t.Errorf("fatal failure retried: %d attempts", calls)
	}
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("expected RESOURCE_NOT_FOUND, got %v", err)
	}
}

func TestInvoke_CorrelationStableAcrossAttempts(t *testing.T) {
	inv := testInvoker(Config{MaxRetries: 3})

	var seen []string
	_, corrID, err := Invoke(context.Background(), inv, "apigee.orgs",
		func(ctx context.Context) (string, error) {
			seen = append(seen, CorrelationIDFrom(ctx))
			return "", errors.Timeout("GET /orgs")
		})

	if len(seen) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(seen))
	}
	for i, id := range seen {
		if id != corrID {
			t.Errorf("attempt %d saw correlation %q, want %q", i+1, id, corrID)
		}
	}
	appErr, _ := errors.As(err)
	if appErr.CorrelationID != corrID {
		t.Errorf("surfaced error carries %q, want %q", appErr.CorrelationID, corrID)
	}
}

func TestInvoke_CorrelationDistinctAcrossInvocations(t *testing.T) {
	inv := testInvoker(Config{})
	op := func(context.Context) (string, error) { return "ok", nil }

	_, first, _ := Invoke(context.Background(), inv, "apigee.orgs", op)
	_, second, _ := Invoke(context.Background(), inv, "apigee.orgs", op)
	if first == second {
		t.Errorf("two invocations shared correlation ID %q", first)
	}
}

func TestInvoke_TimeoutBoundsWholeCall(t *testing.T) {
	inv := testInvoker(Config{RequestTimeoutSeconds: 1, MaxRetries: 3})

	start := time.Now()
	_, _, err := Invoke(context.Background(), inv, "apigee.slow",
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("invoke not bounded by request timeout, took %v", elapsed)
	}
	if !errors.IsKind(err, errors.KindTimeout) {
		t.Errorf("expected TIMEOUT_ERROR, got %v", err)
	}

	// The expired call counts as exactly one breaker failure.
	if state, tracked := inv.BreakerState("apigee.slow"); !tracked || state != StateClosed {
		t.Errorf("expected tracked closed breaker, got %s (tracked=%v)", state, tracked)
	}
}

func TestInvoke_KeysDoNotShareState(t *testing.T) {
	inv := testInvoker(Config{FailureThreshold: 1, MaxRetries: 1})

	_, _, _ = Invoke(context.Background(), inv, "apigee.proxies",
		failingOp(errors.ExternalService("apigee", "down", 503)))

	if state, _ := inv.BreakerState("apigee.proxies"); state != StateOpen {
		t.Fatalf("expected proxies breaker open, got %s", state)
	}

	// A different key is unaffected.
	result, _, err := Invoke(context.Background(), inv, "apigee.developers",
		func(context.Context) (string, error) { return "ok", nil })
	if err != nil || result != "ok" {
		t.Errorf("independent key rejected: %v", err)
	}
}

func TestInvoke_Hooks(t *testing.T) {
	var retries, rateLimited, transitions int

	inv := NewInvoker(
		Config{FailureThreshold: 1, MaxRetries: 2, RateLimitRequests: 1, RateLimitWindowSeconds: 60},
		Hooks{
			OnRetry:       func(string, int, error, time.Duration) { retries++ },
			OnRateLimited: func(string) { rateLimited++ },
			OnStateChange: func(string, State, State) { transitions++ },
		})
	inv.retryBaseDelay = time.Millisecond

	_, _, _ = Invoke(context.Background(), inv, "apigee.orgs",
		failingOp(errors.ExternalService("apigee", "down", 503)))
	_, _, _ = Invoke(context.Background(), inv, "apigee.orgs",
		func(context.Context) (string, error) { return "ok", nil })

	if retries != 1 {
		t.Errorf("expected 1 retry hook call, got %d", retries)
	}
	if transitions != 1 {
		t.Errorf("expected 1 state transition (closed->open), got %d", transitions)
	}
	if rateLimited != 1 {
		t.Errorf("expected 1 rate-limit hook call, got %d", rateLimited)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.FailureThreshold != 5 {
		t.Errorf("failure threshold: expected 5, got %d", cfg.FailureThreshold)
	}
	if cfg.ResetTimeoutSeconds != 60 {
		t.Errorf("reset timeout: expected 60, got %d", cfg.ResetTimeoutSeconds)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("max retries: expected 3, got %d", cfg.MaxRetries)
	}
	if cfg.BackoffMultiplier != 2.0 {
		t.Errorf("backoff multiplier: expected 2.0, got %v", cfg.BackoffMultiplier)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("request timeout: expected 30, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.RateLimitRequests != 100 {
		t.Errorf("rate limit requests: expected 100, got %d", cfg.RateLimitRequests)
	}
	if cfg.RateLimitWindowSeconds != 60 {
		t.Errorf("rate limit window: expected 60, got %d", cfg.RateLimitWindowSeconds)
	}
}
