package errors

import "fmt"

// Error is the classified application error. Every failure leaving a gateway
// component resolves to exactly one Kind before it surfaces.
type Error struct {
	// Kind classifies the failure.
	Kind Kind `json:"code"`
	// Status is the HTTP-like status code fixed for the kind (an
	// ExternalService error may carry the upstream 5xx instead of 502).
	Status int `json:"status"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// Details carries additional context. Sensitive keys are redacted
	// when the error is serialized.
	Details map[string]any `json:"details,omitempty"`
	// CorrelationID identifies the logical call that produced the error.
	// It is stable across all retry attempts of one invocation.
	CorrelationID string `json:"correlation_id,omitempty"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.CorrelationID != "" {
		return fmt.Sprintf("[%s] %s (correlation_id: %s)", e.Kind, e.Message, e.CorrelationID)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the provided details and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithCorrelationID stamps the error with a correlation ID and returns the
// receiver. An existing ID is overwritten; the invoker owns the final value.
func (e *Error) WithCorrelationID(id string) *Error {
	e.CorrelationID = id
	return e
}

// New creates an Error of the given kind with the kind's fixed status.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Status: kind.Status(), Message: message}
}

// --- Constructors, one per kind ---

// Validation creates a validation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// MissingParameter reports a required parameter that was not provided.
func MissingParameter(parameter string) *Error {
	return New(KindValidation, fmt.Sprintf("missing required parameter: %q", parameter)).
		WithDetail("parameter", parameter)
}

// InvalidParameter reports a parameter that failed validation. The offending
// value is deliberately not recorded.
func InvalidParameter(parameter, reason string) *Error {
	return New(KindValidation, fmt.Sprintf("invalid parameter %q: %s", parameter, reason)).
		WithDetails(map[string]any{"parameter": parameter, "reason": reason})
}

// Authentication creates an authentication error.
func Authentication(message string) *Error {
	if message == "" {
		message = "authentication failed"
	}
	return New(KindAuthentication, message)
}

// Authorization creates an authorization error for the named resource.
func Authorization(message, resource string) *Error {
	if message == "" {
		message = "access denied"
	}
	e := New(KindAuthorization, message)
	if resource != "" {
		e.WithDetail("resource", resource)
	}
	return e
}

// NotFound reports a missing resource.
func NotFound(resourceType, resourceID string) *Error {
	return New(KindNotFound, fmt.Sprintf("%s not found: %s", resourceType, resourceID)).
		WithDetails(map[string]any{"resource_type": resourceType, "resource_id": resourceID})
}

// Conflict reports a resource that already exists.
func Conflict(resourceType, resourceID string) *Error {
	return New(KindConflict, fmt.Sprintf("%s already exists: %s", resourceType, resourceID)).
		WithDetails(map[string]any{"resource_type": resourceType, "resource_id": resourceID})
}

// Timeout reports an operation that exceeded its deadline.
func Timeout(operation string) *Error {
	return New(KindTimeout, fmt.Sprintf("operation timed out: %s", operation)).
		WithDetail("operation", operation)
}

// RateLimited reports a rate-limit rejection. retryAfterSeconds is the time
// until the window resets, zero if unknown.
func RateLimited(retryAfterSeconds float64) *Error {
	e := New(KindRateLimited, "rate limit exceeded")
	if retryAfterSeconds > 0 {
		e.WithDetail("retry_after", retryAfterSeconds)
	}
	return e
}

// ExternalService reports a remote API failure. status overrides the default
// 502 when the upstream returned a concrete 5xx.
func ExternalService(service, message string, status int) *Error {
	e := New(KindExternalService, fmt.Sprintf("%s: %s", service, message)).
		WithDetail("service", service)
	if status >= 500 {
		e.Status = status
	}
	return e
}

// CircuitOpen reports a call short-circuited by an open breaker.
func CircuitOpen(targetKey string) *Error {
	return New(KindCircuitOpen, fmt.Sprintf("circuit breaker open for %s", targetKey)).
		WithDetail("target_key", targetKey)
}

// Unknown wraps an unclassified failure.
func Unknown(cause error) *Error {
	msg := "unexpected error"
	if cause != nil {
		msg = cause.Error()
	}
	return New(KindUnknown, msg).WithCause(cause)
}
