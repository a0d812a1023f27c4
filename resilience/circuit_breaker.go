package resilience

import (
	"sync"
	"time"

	"apigee-gateway/errors"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed allows calls to pass through.
	StateClosed State = iota
	// StateOpen rejects all calls without invoking the operation.
	StateOpen
	// StateHalfOpen admits a single trial call to test recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// TargetKey identifies the guarded dependency, for errors and hooks.
	TargetKey string
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit.
	FailureThreshold int
	// ResetTimeout is how long the circuit stays open before the next
	// call is admitted as a half-open trial.
	ResetTimeout time.Duration
	// OnStateChange is called after every state transition.
	OnStateChange func(targetKey string, from, to State)
}

// DefaultCircuitBreakerConfig returns the defaults for a target key.
func DefaultCircuitBreakerConfig(targetKey string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		TargetKey:        targetKey,
		FailureThreshold: 5,
		ResetTimeout:     60 * time.Second,
	}
}

// CircuitBreaker tracks consecutive failures for one target key and
// short-circuits calls while the dependency is considered unhealthy.
//
// While half-open, exactly one trial call is admitted; concurrent callers
// are rejected as if the circuit were still open, so a recovering dependency
// never sees a probe herd. The trial's outcome alone decides the next state.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu              sync.Mutex
	state           State
	failureCount    int
	lastFailureTime time.Time
	openedAt        time.Time
	probeInFlight   bool
}

// NewCircuitBreaker creates a circuit breaker in the closed state.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 60 * time.Second
	}
	return &CircuitBreaker{config: config, state: StateClosed}
}

// Execute runs fn through the breaker. If the circuit is open (or a
// half-open trial is already in flight) it returns a CircuitOpen error
// without invoking fn. Any non-nil error from fn counts as one failure;
// a nil error resets the failure count.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.admit() {
		return errors.CircuitOpen(cb.config.TargetKey)
	}

	err := fn()
	cb.record(err)
	return err
}

// State returns the current state, applying the open→half-open timeout.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == StateOpen && time.Since(cb.openedAt) >= cb.config.ResetTimeout {
		return StateHalfOpen
	}
	return cb.state
}

// FailureCount returns the current consecutive-failure count.
func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failureCount
}

// admit decides whether a call may proceed. State transitions here and in
// record are linearizable: both run under the breaker's mutex, and the
// half-open gate admits one probe at a time.
func (cb *CircuitBreaker) admit() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.openedAt) < cb.config.ResetTimeout {
			return false
		}
		cb.transition(StateHalfOpen)
		cb.probeInFlight = true
		return true
	case StateHalfOpen:
		if cb.probeInFlight {
			return false
		}
		cb.probeInFlight = true
		return true
	default:
		return false
	}
}

// record observes the outcome of an admitted call.
func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.onSuccess()
	} else {
		cb.onFailure()
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateClosed:
		cb.failureCount = 0
	case StateHalfOpen:
		cb.probeInFlight = false
		cb.failureCount = 0
		cb.transition(StateClosed)
	}
}

func (cb *CircuitBreaker) onFailure() {
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case StateClosed:
		cb.failureCount++
		if cb.failureCount >= cb.config.FailureThreshold {
			cb.openedAt = time.Now()
			cb.transition(StateOpen)
		}
	case StateHalfOpen:
		cb.probeInFlight = false
		cb.openedAt = time.Now()
		cb.transition(StateOpen)
	}
}

// transition moves to a new state and fires the hook. Caller holds the mutex.
func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.TargetKey, from, to)
	}
}
