package provider

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a provider with a token-bucket rate limiter so a burst
// of concurrent turns cannot exhaust the upstream quota. Waiting respects
// the caller's context deadline, so a bounded-turn timeout still holds.
type RateLimited struct {
	inner   Provider
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with a limit of requestsPerSecond and burst.
func NewRateLimited(inner Provider, requestsPerSecond float64, burst int) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped provider's name.
func (r *RateLimited) Name() string {
	return r.inner.Name()
}

// CreateCompletion waits for a rate token, then delegates.
func (r *RateLimited) CreateCompletion(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, NewProviderError(r.inner.Name(), ErrorCodeTimeout, "rate limit wait: "+err.Error(), err)
	}
	return r.inner.CreateCompletion(ctx, req)
}

// CreateStructured waits for a rate token, then delegates.
func (r *RateLimited) CreateStructured(ctx context.Context, req StructuredRequest) (*StructuredResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, NewProviderError(r.inner.Name(), ErrorCodeTimeout, "rate limit wait: "+err.Error(), err)
	}
	return r.inner.CreateStructured(ctx, req)
}
