package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"apigee-gateway/errors"
)

// Config holds the resilience knobs, consumed read-only at construction.
// Field names follow the gateway configuration keys.
type Config struct {
	// FailureThreshold opens a breaker after this many consecutive failures.
	FailureThreshold int `yaml:"circuit_breaker_failure_threshold" mapstructure:"circuit_breaker_failure_threshold"`
	// ResetTimeoutSeconds is how long a breaker stays open.
	ResetTimeoutSeconds int `yaml:"circuit_breaker_reset_timeout_seconds" mapstructure:"circuit_breaker_reset_timeout_seconds"`
	// MaxRetries is the total attempt count per logical call.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
	// BackoffMultiplier is the exponential backoff factor.
	BackoffMultiplier float64 `yaml:"retry_backoff_multiplier" mapstructure:"retry_backoff_multiplier"`
	// RequestTimeoutSeconds bounds one logical call, retries included.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
	// RateLimitRequests is the admissions allowed per window per key.
	RateLimitRequests int `yaml:"rate_limit_requests" mapstructure:"rate_limit_requests"`
	// RateLimitWindowSeconds is the rate-limit window duration.
	RateLimitWindowSeconds int `yaml:"rate_limit_window_seconds" mapstructure:"rate_limit_window_seconds"`
}

// ApplyDefaults fills unset fields with the documented defaults.
func (c *Config) ApplyDefaults() {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 5
	}
	if c.ResetTimeoutSeconds <= 0 {
		c.ResetTimeoutSeconds = 60
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMultiplier <= 0 {
		c.BackoffMultiplier = 2.0
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.RateLimitRequests <= 0 {
		c.RateLimitRequests = 100
	}
	if c.RateLimitWindowSeconds <= 0 {
		c.RateLimitWindowSeconds = 60
	}
}

// Hooks are optional observation callbacks. The invoker itself carries no
// logging or metrics responsibility; callers attach what they need here.
type Hooks struct {
	// OnStateChange fires on every breaker transition.
	OnStateChange func(targetKey string, from, to State)
	// OnRetry fires before each re-attempt sleep.
	OnRetry func(targetKey string, attempt int, err error, delay time.Duration)
	// OnRateLimited fires when the local limiter rejects a call.
	OnRateLimited func(targetKey string)
}

// Invoker composes the rate limiter, circuit breaker, and retry policy
// around outbound calls. Breaker and limiter state is partitioned by target
// key; entries are created lazily and live for the process lifetime, each
// guarded by its own lock so calls against different keys never contend.
type Invoker struct {
	config Config
	hooks  Hooks

	// retryBaseDelay/retryMaxDelay override the default backoff bounds
	// when non-zero; tests use millisecond delays.
	retryBaseDelay time.Duration
	retryMaxDelay  time.Duration

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
	limiters map[string]*RateLimiter
}

// NewInvoker creates an invoker. A fresh invoker per test gives full state
// isolation; production constructs one at startup and shares it.
func NewInvoker(config Config, hooks Hooks) *Invoker {
	config.ApplyDefaults()
	return &Invoker{
		config:   config,
		hooks:    hooks,
		breakers: make(map[string]*CircuitBreaker),
		limiters: make(map[string]*RateLimiter),
	}
}

// Invoke runs one logical call against targetKey: rate-limiter gate, then
// the circuit breaker wrapping the retry policy wrapping op. It generates
// one correlation ID up front, stamps it on every classified error produced
// during the call, and returns it alongside the result so callers can log it.
//
// The configured request timeout bounds the whole call, attempts and delays
// included; on expiry the in-flight attempt is abandoned and a Timeout error
// surfaces, counted as one breaker failure.
func Invoke[T any](ctx context.Context, inv *Invoker, targetKey string, op func(context.Context) (T, error)) (T, string, error) {
	var zero T
	correlationID := uuid.NewString()
	ctx = ContextWithCorrelationID(ctx, correlationID)

	if timeout := inv.requestTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if retryAfter, ok := inv.limiter(targetKey).Allow(); !ok {
		if inv.hooks.OnRateLimited != nil {
			inv.hooks.OnRateLimited(targetKey)
		}
		err := errors.RateLimited(retryAfter.Seconds()).
			WithDetail("target_key", targetKey).
			WithCorrelationID(correlationID)
		return zero, correlationID, err
	}

	// Each attempt's error is classified and stamped before the retry
	// policy sees it, so every error from this logical call shares one
	// correlation ID.
	attempt := func(ctx context.Context) (T, error) {
		result, err := op(ctx)
		if err != nil {
			return zero, errors.FromError(err).WithCorrelationID(correlationID)
		}
		return result, nil
	}

	retryCfg := inv.retryConfig(targetKey)

	var result T
	err := inv.breaker(targetKey).Execute(func() error {
		r, err := Retry(ctx, retryCfg, attempt)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return zero, correlationID, errors.FromError(err).WithCorrelationID(correlationID)
	}

	return result, correlationID, nil
}

// BreakerState reports the breaker state for a target key, if one exists.
func (inv *Invoker) BreakerState(targetKey string) (State, bool) {
	inv.mu.Lock()
	cb, ok := inv.breakers[targetKey]
	inv.mu.Unlock()
	if !ok {
		return StateClosed, false
	}
	return cb.State(), true
}

// BreakerStates returns a snapshot of every known breaker's state.
func (inv *Invoker) BreakerStates() map[string]State {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	states := make(map[string]State, len(inv.breakers))
	for key, cb := range inv.breakers {
		states[key] = cb.State()
	}
	return states
}

func (inv *Invoker) requestTimeout() time.Duration {
	return time.Duration(inv.config.RequestTimeoutSeconds) * time.Second
}

func (inv *Invoker) retryConfig(targetKey string) RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxAttempts = inv.config.MaxRetries
	cfg.Multiplier = inv.config.BackoffMultiplier
	if inv.retryBaseDelay > 0 {
		cfg.BaseDelay = inv.retryBaseDelay
	}
	if inv.retryMaxDelay > 0 {
		cfg.MaxDelay = inv.retryMaxDelay
	}
	if inv.hooks.OnRetry != nil {
		onRetry := inv.hooks.OnRetry
		cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
			onRetry(targetKey, attempt, err, delay)
		}
	}
	return cfg
}

// breaker returns the circuit breaker for a key, creating it lazily. The
// invoker's mutex guards the table only; each breaker has its own lock.
func (inv *Invoker) breaker(targetKey string) *CircuitBreaker {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	cb, ok := inv.breakers[targetKey]
	if !ok {
		cb = NewCircuitBreaker(CircuitBreakerConfig{
			TargetKey:        targetKey,
			FailureThreshold: inv.config.FailureThreshold,
			ResetTimeout:     time.Duration(inv.config.ResetTimeoutSeconds) * time.Second,
			OnStateChange:    inv.hooks.OnStateChange,
		})
		inv.breakers[targetKey] = cb
	}
	return cb
}

func (inv *Invoker) limiter(targetKey string) *RateLimiter {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	rl, ok := inv.limiters[targetKey]
	if !ok {
		rl = NewRateLimiter(RateLimiterConfig{
			MaxRequests: inv.config.RateLimitRequests,
			Window:      time.Duration(inv.config.RateLimitWindowSeconds) * time.Second,
		})
		inv.limiters[targetKey] = rl
	}
	return rl
}

// correlationContextKey is an unexported type for context keys.
type correlationContextKey struct{}

// ContextWithCorrelationID returns a context carrying the correlation ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationContextKey{}, id)
}

// CorrelationIDFrom extracts the correlation ID from a context, if present.
func CorrelationIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(correlationContextKey{}).(string); ok {
		return id
	}
	return ""
}
