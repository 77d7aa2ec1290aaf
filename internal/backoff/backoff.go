package backoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"
)

// maxDelayShift caps the exponent of the delay schedule so the shift
// can never overflow time.Duration. 2^20 seconds is already ~12 days;
// any sane retry budget exhausts long before the cap matters.
const maxDelayShift = 20

// Policy controls retry behavior for a single logical call.
// The zero value retries nothing; use the configured base and budget.
type Policy struct {
	// Base is the unit of the schedule: attempt n (1-based) waits
	// Base * 2^(n-1) before the next try, and the attempt itself is
	// bounded by Base * n.
	Base time.Duration

	// MaxRetries is the retry budget on top of the initial attempt.
	// A call makes at most MaxRetries+1 attempts.
	MaxRetries int

	// Jitter scales each delay by a uniform random factor in [0.5, 1.5)
	// to avoid thundering-herd resynchronization against a struggling
	// server.
	Jitter bool
}

// Delay returns the wait before the retry that follows attempt n.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	shift := attempt - 1
	if shift > maxDelayShift {
		shift = maxDelayShift
	}
	d := p.Base << shift
	if p.Jitter {
		d = time.Duration(float64(d) * (0.5 + rand.Float64()))
	}
	return d
}

// CallTimeout bounds attempt n: the timeout grows linearly so later
// attempts get more room while the backoff delay between them doubles.
func (p Policy) CallTimeout(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return time.Duration(attempt) * p.Base
}

// ShouldRetry reports whether another attempt is allowed after attempt n
// failed with err. Non-retryable failures are final regardless of how
// much budget remains.
func (p Policy) ShouldRetry(attempt int, err error) bool {
	return attempt <= p.MaxRetries && Retryable(err)
}

// retryable is implemented by API error types that know their own class.
type retryable interface {
	Retryable() bool
}

// Retryable classifies err. API errors carry their own classification;
// beyond that, timeouts and transport-level network failures are worth
// retrying, while everything else (including cancellation) is final.
func Retryable(err error) bool {
	if err == nil {
		return false
	}

	// Cancellation is a decision, not a failure mode.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}

	// A call that outlived its per-attempt timeout is a transient failure.
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// Error is returned by Do when a call fails permanently. It records how
// many attempts were made so node failures can be logged with their
// full retry history.
type Error struct {
	// Attempts is the number of attempts made, initial call included.
	Attempts int

	// Err is the final attempt's failure.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("giving up after %d attempt(s): %v", e.Attempts, e.Err)
}

// Unwrap exposes the final failure for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Attempts extracts the attempt count from an error returned by Do.
// Errors from other sources count as a single attempt.
func Attempts(err error) int {
	var bErr *Error
	if errors.As(err, &bErr) {
		return bErr.Attempts
	}
	return 1
}

// Do runs fn under the policy. fn receives the run context and the
// 1-based attempt number; it is expected to bound its own network call
// with CallTimeout so that time spent waiting for a rate-limit token
// does not eat into the call budget.
//
// On success the result is returned as-is. On permanent failure Do
// returns an *Error wrapping the final attempt's error.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, &Error{Attempts: attempt - 1, Err: err}
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}

		if !p.ShouldRetry(attempt, err) {
			return zero, &Error{Attempts: attempt, Err: err}
		}

		delay := p.Delay(attempt)
		slog.Debug("retrying after failure",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, &Error{Attempts: attempt, Err: err}
		}
	}
}
