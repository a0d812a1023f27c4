package resilience

import (
	"sync"
	"time"
)

// RateLimiterConfig configures a rolling-window rate limiter.
type RateLimiterConfig struct {
	// MaxRequests is the number of admissions allowed per window.
	MaxRequests int
	// Window is the window duration. The counter resets once a full
	// window has elapsed since the window started.
	Window time.Duration
}

// DefaultRateLimiterConfig returns the defaults.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		MaxRequests: 100,
		Window:      60 * time.Second,
	}
}

// RateLimiter bounds the number of admissions per rolling time window for
// one target key. It never blocks: callers that are not admitted receive the
// time until the window resets and must surface a RateLimited error rather
// than wait.
type RateLimiter struct {
	config RateLimiterConfig

	mu           sync.Mutex
	windowStart  time.Time
	requestCount int
}

// NewRateLimiter creates a rate limiter with an open window starting at the
// first admission attempt.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.MaxRequests <= 0 {
		config.MaxRequests = 100
	}
	if config.Window <= 0 {
		config.Window = 60 * time.Second
	}
	return &RateLimiter{config: config}
}

// Allow attempts to admit one call. It returns (0, true) when admitted and
// (retryAfter, false) when the window is exhausted, where retryAfter is the
// time remaining until the window resets. Check-and-increment runs under the
// limiter's mutex so a window never admits more than MaxRequests calls.
func (rl *RateLimiter) Allow() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if rl.windowStart.IsZero() || now.Sub(rl.windowStart) >= rl.config.Window {
		rl.windowStart = now
		rl.requestCount = 0
	}

	if rl.requestCount < rl.config.MaxRequests {
		rl.requestCount++
		return 0, true
	}

	return rl.windowStart.Add(rl.config.Window).Sub(now), false
}

// Remaining returns the admissions left in the current window.
func (rl *RateLimiter) Remaining() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.windowStart.IsZero() || time.Since(rl.windowStart) >= rl.config.Window {
		return rl.config.MaxRequests
	}
	return rl.config.MaxRequests - rl.requestCount
}
