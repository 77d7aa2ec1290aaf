// Package backoff implements the retry policy for API calls: an
// exponential delay schedule with optional jitter, a retryable/fatal
// error classification, and a generic driver that runs a call under the
// policy with a per-attempt timeout.
//
// Failures are explicit values, never hidden control flow: the driver
// returns an *Error carrying the attempt count on exhaustion, and the
// caller decides whether the wrapped failure is node-level or run-fatal.
package backoff
