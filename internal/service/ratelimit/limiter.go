// Package ratelimit implements a per-key token bucket used to throttle
// order placement and other abuse-prone endpoints.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// sweepInterval bounds how often Allow scans for idle buckets.
const sweepInterval = time.Minute

// Limiter holds one token bucket per key. Buckets idle longer than the sweep
// horizon are dropped so the map does not grow with one-off client addresses;
// Allow sweeps opportunistically, at most once per sweepInterval.
type Limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	capacity  float64
	refill    float64 // tokens per second
	now       func() time.Time
	lastSweep time.Time
}

func New(capacity, refillPerSec float64) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	if refillPerSec <= 0 {
		refillPerSec = 1
	}
	return &Limiter{
		buckets:   make(map[string]*bucket),
		capacity:  capacity,
		refill:    refillPerSec,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// Allow consumes one token for key if available.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweepLocked(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens += elapsed * l.refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Sweep drops buckets that have been idle long enough to be full again.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(l.now())
}

func (l *Limiter) sweepLocked(now time.Time) {
	horizon := time.Duration(l.capacity/l.refill*float64(time.Second)) + time.Minute
	for key, b := range l.buckets {
		if now.Sub(b.last) > horizon {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
