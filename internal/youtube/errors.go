package youtube

import "fmt"

// The error types below carry their own retry classification via
// Retryable() and, for run-fatal failures, Fatal(). The backoff and
// crawler packages discover both through errors.As without importing
// this package.

// AuthError reports a rejected credential: HTTP 401, or a 403 whose
// reason is not quota related. It is never retried and aborts the run.
type AuthError struct {
	// StatusCode is the HTTP status that produced the error.
	StatusCode int

	// Reason is the API's machine-readable reason, when present.
	Reason string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("authentication rejected (HTTP %d, reason %q)", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("authentication rejected (HTTP %d)", e.StatusCode)
}

// Retryable reports that auth failures are never retried.
func (e *AuthError) Retryable() bool { return false }

// Fatal reports that auth failures abort the whole run.
func (e *AuthError) Fatal() bool { return true }

// RateLimitError reports that the API refused the request for budget
// reasons: HTTP 429, or a 403 with a quota/rate-limit reason. Retryable.
type RateLimitError struct {
	// StatusCode is the HTTP status that produced the error.
	StatusCode int

	// Reason is the API's machine-readable reason, e.g. "quotaExceeded".
	Reason string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("rate limited (HTTP %d, reason %q)", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("rate limited (HTTP %d)", e.StatusCode)
}

// Retryable reports that rate-limit failures may be retried after backoff.
func (e *RateLimitError) Retryable() bool { return true }

// TransientError reports a failure that is expected to clear on its
// own: 5xx responses and transport-level network errors. Retryable.
type TransientError struct {
	// StatusCode is the HTTP status, or zero for transport failures.
	StatusCode int

	// Err is the underlying transport error, when there is one.
	Err error
}

// Error implements the error interface.
func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient failure: %v", e.Err)
	}
	return fmt.Sprintf("transient failure (HTTP %d)", e.StatusCode)
}

// Unwrap exposes the transport error.
func (e *TransientError) Unwrap() error { return e.Err }

// Retryable reports that transient failures may be retried.
func (e *TransientError) Retryable() bool { return true }

// MalformedResponseError reports a response (or request) the crawl
// cannot make sense of: an undecodable body, or a 4xx other than the
// auth and rate-limit statuses. Not retried; the node fails permanently.
type MalformedResponseError struct {
	// StatusCode is the HTTP status of the offending exchange.
	StatusCode int

	// Err is the decoding failure, when there is one.
	Err error
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("unexpected response (HTTP %d)", e.StatusCode)
}

// Unwrap exposes the decoding error.
func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Retryable reports that malformed exchanges are never retried.
func (e *MalformedResponseError) Retryable() bool { return false }
