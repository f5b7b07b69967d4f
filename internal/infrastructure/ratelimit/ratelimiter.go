package ratelimit

import (
	"context"
	"time"
)

// Policy allows at most Limit requests per Window. The Redis limiter counts a
// sliding window; the in-process one refills a token bucket over Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, policy Policy) (bool, error)
	Reset(ctx context.Context, key string) error
}
