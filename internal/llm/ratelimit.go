package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedProvider is a decorator that spaces out requests so a burst
// of explanation lookups does not trip the provider's quota. It waits; it
// never retries.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps a Provider with a token-bucket limiter.
// A zero RequestsPerMinute returns p unchanged.
func WithRateLimit(p Provider, cfg RateLimitConfig) Provider {
	if cfg.RequestsPerMinute <= 0 {
		return p
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	every := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &RateLimitedProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Every(every), burst),
	}
}

func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	// Wait fails only when ctx ends first; that is a cancellation, not a quota error.
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitedProvider) ModelID() string {
	return r.inner.ModelID()
}
