// Package throttle rate-limits login attempts with a Redis fixed window.
package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type LoginThrottle struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// NewLoginThrottle returns a throttle; a nil client or non-positive limit
// disables it (Allow always true).
func NewLoginThrottle(rdb *redis.Client, limit int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{rdb: rdb, limit: limit, window: window}
}

// Allow records one attempt for the email+IP pair and reports whether it is
// still within the window's budget. Redis errors fail open: an unavailable
// limiter must not lock everyone out.
func (t *LoginThrottle) Allow(ctx context.Context, email, ip string) bool {
	if t.rdb == nil || t.limit <= 0 {
		return true
	}

	key := fmt.Sprintf("login_attempts:%s:%s", email, ip)
	count, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		t.rdb.Expire(ctx, key, t.window)
	}
	return count <= int64(t.limit)
}
