package ratelimiter

import (
	"sync"
	"time"
)

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowRateLimiter counts requests per key (client IP) inside a window that starts
// with the key's first request.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
}

// Allow records a request for key. When the key is over its limit it returns false and
// the time left until its window resets. A limit below 1 admits nothing.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.limit < 1 {
		return false, rl.window
	}

	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, exists := rl.clients[key]
	if !exists || !now.Before(w.resetAt) {
		rl.clients[key] = &window{count: 1, resetAt: now.Add(rl.window)}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, w.resetAt.Sub(now)
}

// Cleanup drops windows that have already expired.
func (rl *FixedWindowRateLimiter) Cleanup() {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	for key, w := range rl.clients {
		if !now.Before(w.resetAt) {
			delete(rl.clients, key)
		}
	}
}

// RunCleanup calls Cleanup once per window until stop is closed.
func (rl *FixedWindowRateLimiter) RunCleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stop:
			return
		}
	}
}
