package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

// limiterEntry is one key's token bucket and the last time it was used.
type limiterEntry struct {
	limiter  *rate.Limiter
	policy   Policy
	lastSeen time.Time
}

// MemoryRateLimiter is the single-process fallback used when Redis is
// disabled. Each key gets a token bucket holding Limit tokens that refills
// over Window. Keys idle for longer than their window are evicted, since a
// fresh bucket is indistinguishable from a refilled one.
type MemoryRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{entries: make(map[string]*limiterEntry), now: time.Now}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string, policy Policy) (bool, error) {
	if policy.Limit <= 0 || policy.Window <= 0 {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.entries[key]
	if !ok || entry.policy != policy {
		every := rate.Every(policy.Window / time.Duration(policy.Limit))
		entry = &limiterEntry{limiter: rate.NewLimiter(every, policy.Limit), policy: policy}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1), nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	delete(l.entries, key)
	l.mu.Unlock()
	return nil
}

// sweep drops idle keys at most once per sweepInterval. Callers hold mu.
func (l *MemoryRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, entry := range l.entries {
		if now.Sub(entry.lastSeen) > entry.policy.Window {
			delete(l.entries, key)
		}
	}
}

func (l *MemoryRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
