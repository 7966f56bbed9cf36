package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider caps how many completions per minute reach the
// underlying backend, keeping a busy chat endpoint inside provider quotas.
// Up to rpm requests pass immediately; beyond that callers block until the
// oldest request in the window ages out or their context is cancelled.
type RateLimitedProvider struct {
	provider Provider
	rpm      int

	mu     sync.Mutex
	window []time.Time // send times within the last minute, oldest first
}

// NewRateLimitedProvider wraps provider with a sliding one-minute window of
// at most rpm requests.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	return &RateLimitedProvider{provider: provider, rpm: rpm}
}

func (r *RateLimitedProvider) Name() string {
	return r.provider.Name()
}

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := r.reserve(ctx); err != nil {
		return nil, err
	}
	return r.provider.Complete(ctx, req)
}

// reserve claims a slot in the per-minute window, blocking while it is full.
func (r *RateLimitedProvider) reserve(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		cutoff := now.Add(-time.Minute)

		expired := 0
		for expired < len(r.window) && !r.window[expired].After(cutoff) {
			expired++
		}
		r.window = r.window[expired:]

		if len(r.window) < r.rpm {
			r.window = append(r.window, now)
			r.mu.Unlock()
			return nil
		}
		wait := r.window[0].Sub(cutoff)
		r.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
