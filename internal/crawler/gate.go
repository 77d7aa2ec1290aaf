package crawler

import (
	"context"

	"github.com/vidwalk/vidwalk/internal/backoff"
	"github.com/vidwalk/vidwalk/internal/model"
	"github.com/vidwalk/vidwalk/internal/ratelimit"
)

// GatedClient wraps a SearchClient so that every call first acquires a
// rate-limit token and then runs under the retry policy. The walker
// only ever talks to the network through this gate; no code path
// reaches the wrapped client directly.
//
// Each retry attempt re-acquires a token: the limiter meters outbound
// requests, and a retry is another outbound request.
type GatedClient struct {
	inner   SearchClient
	limiter *ratelimit.Limiter
	policy  backoff.Policy
}

// NewGatedClient wraps inner with the given limiter and retry policy.
func NewGatedClient(inner SearchClient, limiter *ratelimit.Limiter, policy backoff.Policy) *GatedClient {
	return &GatedClient{
		inner:   inner,
		limiter: limiter,
		policy:  policy,
	}
}

// SearchByKeyword issues a gated keyword search.
func (g *GatedClient) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.VideoRef, error) {
	return backoff.Do(ctx, g.policy, func(ctx context.Context, attempt int) ([]model.VideoRef, error) {
		callCtx, cancel, err := g.admit(ctx, attempt)
		if err != nil {
			return nil, err
		}
		defer cancel()
		return g.inner.SearchByKeyword(callCtx, keyword, limit)
	})
}

// FetchRelated issues a gated related-video fetch.
func (g *GatedClient) FetchRelated(ctx context.Context, ref model.VideoRef) ([]model.VideoRef, error) {
	return backoff.Do(ctx, g.policy, func(ctx context.Context, attempt int) ([]model.VideoRef, error) {
		callCtx, cancel, err := g.admit(ctx, attempt)
		if err != nil {
			return nil, err
		}
		defer cancel()
		return g.inner.FetchRelated(callCtx, ref)
	})
}

// admit waits for a rate-limit token on the run context, then derives
// the per-attempt call context. The token wait happens before the call
// timeout starts, so a slow token never counts against the call budget.
func (g *GatedClient) admit(ctx context.Context, attempt int) (context.Context, context.CancelFunc, error) {
	if err := g.limiter.Acquire(ctx); err != nil {
		return nil, nil, err
	}
	callCtx, cancel := context.WithTimeout(ctx, g.policy.CallTimeout(attempt))
	return callCtx, cancel, nil
}
