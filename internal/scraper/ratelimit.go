package scraper

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between requests within one
// scrape session.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRateLimiter creates a limiter with the given minimum interval. An
// interval of zero disables waiting.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the interval since the previous request has elapsed or
// the context is done. The first call never waits.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.last.IsZero() {
		if remaining := r.interval - r.now().Sub(r.last); remaining > 0 {
			if err := r.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}
	r.last = r.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
