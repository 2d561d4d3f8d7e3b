package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider wraps a Provider and enforces a requests-per-minute
// quota with a sliding window. Video analysis calls are long and billed per
// request, so staying under the provider quota matters more than throughput.
type RateLimitedProvider struct {
	provider Provider
	rpm      int

	mu     sync.Mutex
	starts []time.Time
}

// NewRateLimitedProvider wraps the given provider so that at most rpm
// Complete calls start within any 60 second window.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	return &RateLimitedProvider{
		provider: provider,
		rpm:      rpm,
	}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.acquire(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

// acquire blocks until a slot opens in the window or ctx is done.
func (r *RateLimitedProvider) acquire(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		cutoff := now.Add(-time.Minute)

		// Drop starts that have aged out of the window.
		kept := r.starts[:0]
		for _, t := range r.starts {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		r.starts = kept

		if len(r.starts) < r.rpm {
			r.starts = append(r.starts, now)
			r.mu.Unlock()
			return nil
		}

		// Oldest start in the window decides when the next slot opens.
		wait := r.starts[0].Sub(cutoff)
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
