package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, window time.Duration) (*FixedWindowRateLimiter, *time.Time) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	rl := NewFixedWindowLimiter(limit, window)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestFixedWindowAllow(t *testing.T) {
	rl, now := newTestLimiter(3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		ok, retry := rl.Allow("10.0.0.1")
		assert.True(t, ok, "request %d", i+1)
		assert.Zero(t, retry)
	}

	*now = now.Add(5 * time.Minute)
	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 10*time.Minute, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "other clients have their own window")

	*now = now.Add(10 * time.Minute)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "window resets")
}

func TestFixedWindowCleanup(t *testing.T) {
	rl, now := newTestLimiter(1, time.Minute)
	rl.Allow("a")
	*now = now.Add(30 * time.Second)
	rl.Allow("b")

	*now = now.Add(45 * time.Second)
	rl.Cleanup()

	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")
}

func TestFixedWindowNonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -2} {
		rl, _ := newTestLimiter(limit, time.Minute)

		ok, retry := rl.Allow("10.0.0.1")
		assert.False(t, ok, "limit %d", limit)
		assert.Equal(t, time.Minute, retry)
		assert.Empty(t, rl.clients)
	}
}
