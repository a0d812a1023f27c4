package errors

import "net/http"

// Kind is a machine-readable classification of a failure.
type Kind string

const (
	// KindValidation indicates an invalid or missing request parameter.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindAuthentication indicates missing or invalid credentials.
	KindAuthentication Kind = "AUTHENTICATION_ERROR"
	// KindAuthorization indicates the caller lacks permission.
	KindAuthorization Kind = "AUTHORIZATION_ERROR"
	// KindNotFound indicates the requested resource does not exist.
	KindNotFound Kind = "RESOURCE_NOT_FOUND"
	// KindConflict indicates the resource already exists or is in a
	// conflicting state.
	KindConflict Kind = "RESOURCE_CONFLICT"
	// KindTimeout indicates an operation exceeded its deadline.
	KindTimeout Kind = "TIMEOUT_ERROR"
	// KindRateLimited indicates the call was rejected by a rate limit,
	// either the local limiter or the remote API (HTTP 429).
	KindRateLimited Kind = "RATE_LIMITED"
	// KindExternalService indicates a failure in the remote API or the
	// network path to it.
	KindExternalService Kind = "EXTERNAL_SERVICE_ERROR"
	// KindCircuitOpen indicates the circuit breaker rejected the call
	// without issuing it.
	KindCircuitOpen Kind = "CIRCUIT_OPEN"
	// KindUnknown is the fallback for unclassified failures.
	KindUnknown Kind = "UNKNOWN_ERROR"
)

// statusByKind maps each kind to its fixed HTTP-like status code.
var statusByKind = map[Kind]int{
	KindValidation:      http.StatusUnprocessableEntity,
	KindAuthentication:  http.StatusUnauthorized,
	KindAuthorization:   http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindTimeout:         http.StatusRequestTimeout,
	KindRateLimited:     http.StatusTooManyRequests,
	KindExternalService: http.StatusBadGateway,
	KindCircuitOpen:     http.StatusServiceUnavailable,
	KindUnknown:         http.StatusInternalServerError,
}

// Status returns the HTTP-like status code fixed for the kind.
func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// String returns the kind's enum name.
func (k Kind) String() string { return string(k) }

// retryableKinds are the kinds for which re-attempting the same operation
// could plausibly succeed. Everything else is fatal.
var retryableKinds = map[Kind]bool{
	KindTimeout:         true,
	KindExternalService: true,
	KindRateLimited:     true,
}
