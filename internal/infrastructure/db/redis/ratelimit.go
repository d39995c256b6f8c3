package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginWindow is one counting window of the brute-force protection.
// Key format: login:<window>:<ip>
type loginWindow struct {
	name    string
	limit   int64
	ttl     time.Duration
	message string
}

// Two windows: one against fast bursts, one against slow drip attacks.
var loginWindows = []loginWindow{
	{
		name:    "burst",
		limit:   5,
		ttl:     5 * time.Minute,
		message: "Too many login attempts from this IP, please try again after 5 minutes.",
	},
	{
		name:    "slow",
		limit:   15,
		ttl:     time.Hour,
		message: "Too many login attempts from this IP, please try again after an hour.",
	},
}

// LoginLimiter throttles login attempts per client IP, backed by Redis.
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Allow counts an attempt from ip against every window. When a window is
// exhausted it returns ok=false and that window's client message.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (bool, string, error) {
	for _, w := range loginWindows {
		key := fmt.Sprintf("login:%s:%s", w.name, ip)

		n, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			return false, "", fmt.Errorf("rate limit incr: %w", err)
		}
		if n == 1 {
			if err := l.client.Expire(ctx, key, w.ttl).Err(); err != nil {
				return false, "", fmt.Errorf("rate limit expire: %w", err)
			}
		}
		if n > w.limit {
			return false, w.message, nil
		}
	}
	return true, "", nil
}
