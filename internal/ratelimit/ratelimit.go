package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket with capacity and refill rate both set to
// the configured requests-per-second budget. Capping the bucket at the
// per-second budget means the limiter never allows a burst beyond what
// one second of steady traffic would.
//
// The limiter is safe for concurrent use; waiting acquirers are served
// roughly in FIFO order, so no worker starves.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter admitting perSecond acquisitions per second.
// Rates below one request per second get a single-token bucket, which
// keeps Acquire usable while still spacing requests at the configured
// interval.
func New(perSecond float64) *Limiter {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Acquire blocks until one request may be issued or ctx is done.
// It has no failure mode of its own; the only error is ctx's.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Rate returns the configured sustained rate in acquisitions per second.
func (l *Limiter) Rate() float64 {
	return float64(l.limiter.Limit())
}
