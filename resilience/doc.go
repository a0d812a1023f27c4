// Package resilience guards every outbound call to the management API.
//
// It provides three composable policies and an invoker that wires them
// around a single logical call:
//
//   - RateLimiter: bounds admissions per rolling time window, per target key
//   - CircuitBreaker: trips after consecutive failures and sheds load while
//     the dependency recovers (closed / open / half-open)
//   - Retry: re-attempts retryable failures with exponential backoff and
//     jitter, up to a bounded attempt count
//
// Composition order is fixed: rate limiter first, so shed load never touches
// breaker bookkeeping; then the circuit breaker, so its failure count
// reflects admitted calls only; retries run inside the breaker so a retry
// storm counts as one breaker observation.
//
//	inv := resilience.NewInvoker(cfg, resilience.Hooks{})
//	resp, corrID, err := resilience.Invoke(ctx, inv, "apigee.proxies",
//	    func(ctx context.Context) (*Response, error) {
//	        return client.Do(ctx, req)
//	    })
//
// All state is per target key and in-memory; it resets on process restart.
package resilience
