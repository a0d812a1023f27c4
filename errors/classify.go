package errors

import (
	"context"
	stderrors "errors"
	"net"
)

// Class tells the retry policy whether re-attempting an operation could
// plausibly succeed.
type Class int

const (
	// ClassFatal failures propagate immediately without another attempt.
	ClassFatal Class = iota
	// ClassRetryable failures may be attempted again.
	ClassRetryable
)

// String returns the class name.
func (c Class) String() string {
	if c == ClassRetryable {
		return "retryable"
	}
	return "fatal"
}

// Classify reports whether err is retryable. It is a pure function: the same
// error instance always yields the same class, and err is never mutated.
//
// Timeouts and transient network or external-service failures are retryable;
// remote rate limiting (HTTP 429) is retryable after backoff. Validation,
// authentication, authorization, not-found, conflict, circuit-open, and
// unknown failures are fatal.
func Classify(err error) Class {
	if err == nil {
		return ClassFatal
	}

	var appErr *Error
	if stderrors.As(err, &appErr) {
		if retryableKinds[appErr.Kind] {
			return ClassRetryable
		}
		return ClassFatal
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return ClassRetryable
	}
	if stderrors.Is(err, context.Canceled) {
		return ClassFatal
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return ClassRetryable
	}

	return ClassFatal
}

// FromError coerces any error into an *Error. Classified errors pass through
// unchanged; context deadlines become Timeout; everything else becomes
// Unknown.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Timeout("request").WithCause(err)
	}
	return Unknown(err)
}

// As is a convenience wrapper around errors.As for *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
