package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisTickLock elects one replica per scheduling window. Time is cut into
// windows of the poll interval; the first replica to SET NX the window's key
// runs that tick and every other replica skips it. The key is left to expire
// so a fast tick cannot be followed by a second run in the same window.
type RedisTickLock struct {
	client redis.UniversalClient
	key    string
	window time.Duration
	now    func() time.Time
}

func NewRedisTickLock(client redis.UniversalClient, key string, window time.Duration) *RedisTickLock {
	return &RedisTickLock{client: client, key: key, window: window, now: time.Now}
}

// TryAcquire reports whether this replica owns the current window.
func (l *RedisTickLock) TryAcquire(ctx context.Context) (bool, error) {
	key := l.windowKey(l.now())

	// Two windows cover clock skew between replicas.
	ok, err := l.client.SetNX(ctx, key, uuid.NewString(), 2*l.window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	return ok, nil
}

func (l *RedisTickLock) windowKey(now time.Time) string {
	if l.window <= 0 {
		return l.key
	}
	return fmt.Sprintf("%s:%d", l.key, now.UTC().Truncate(l.window).Unix())
}
