package scraper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives a RateLimiter without real sleeping.
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	ctxErr error
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) limiter(interval time.Duration) *RateLimiter {
	r := NewRateLimiter(interval)
	r.now = func() time.Time { return c.now }
	r.sleep = func(ctx context.Context, d time.Duration) error {
		if c.ctxErr != nil {
			return c.ctxErr
		}
		c.slept = append(c.slept, d)
		c.now = c.now.Add(d)
		return nil
	}
	return r
}

func TestRateLimiterFirstCallDoesNotWait(t *testing.T) {
	clock := newFakeClock()
	r := clock.limiter(time.Second)

	require.NoError(t, r.Wait(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestRateLimiterEnforcesInterval(t *testing.T) {
	clock := newFakeClock()
	r := clock.limiter(2 * time.Second)

	require.NoError(t, r.Wait(context.Background()))

	clock.now = clock.now.Add(500 * time.Millisecond)
	require.NoError(t, r.Wait(context.Background()))
	require.Len(t, clock.slept, 1)
	assert.Equal(t, 1500*time.Millisecond, clock.slept[0])
}

func TestRateLimiterNoWaitAfterInterval(t *testing.T) {
	clock := newFakeClock()
	r := clock.limiter(time.Second)

	require.NoError(t, r.Wait(context.Background()))

	clock.now = clock.now.Add(3 * time.Second)
	require.NoError(t, r.Wait(context.Background()))
	assert.Empty(t, clock.slept)
}

func TestRateLimiterContextCancelled(t *testing.T) {
	clock := newFakeClock()
	r := clock.limiter(time.Second)
	clock.ctxErr = context.Canceled

	require.NoError(t, r.Wait(context.Background()))
	assert.ErrorIs(t, r.Wait(context.Background()), context.Canceled)
}

func TestRateLimiterZeroInterval(t *testing.T) {
	clock := newFakeClock()
	r := clock.limiter(0)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Wait(context.Background()))
	}
	assert.Empty(t, clock.slept)
}
