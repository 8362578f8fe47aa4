package http

import (
	"sync"
	"time"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-client bucket refilled to capacity once per window.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    int
	window      time.Duration
	clients     map[string]*clientBucket
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type RateLimiterOption func(*RateLimiter)

// WithClock replaces time.Now as the limiter's time source.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) { r.now = now }
}

func NewRateLimiter(capacity int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		capacity:    capacity,
		window:      window,
		clients:     make(map[string]*clientBucket),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastRefill) > bucketCleanupThreshold {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup goroutine; safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow takes one token for client. When the bucket is empty it returns false
// and how long until the next refill.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]
	if !exists {
		r.clients[client] = &clientBucket{
			tokens:     r.capacity - 1,
			lastRefill: now,
		}
		return true, 0
	}

	if now.Sub(bucket.lastRefill) >= r.window {
		bucket.tokens = r.capacity
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false, bucket.lastRefill.Add(r.window).Sub(now)
	}

	bucket.tokens--
	return true, 0
}
