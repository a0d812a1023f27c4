// Package errors defines the classified error type shared by every layer of
// the gateway.
//
// Every failure that crosses a package boundary is an *Error carrying a Kind,
// an HTTP-like status, a human-readable message, optional details, and the
// correlation ID of the logical call that produced it. Kinds are
// non-overlapping; Classify reports whether a failure is worth retrying.
//
// Sensitive detail keys are redacted before an error is serialized, so error
// payloads and logs never leak credentials.
package errors
