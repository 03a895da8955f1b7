package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed-window limits
const (
	ipWindow      = 15 * time.Minute
	ipMaxRequests = 10
)

// Limiter implements fixed-window rate limiting backed by Redis.
// Counters expire with the window, so no cleanup is needed.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

func ipKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:ip:%s:%s", purpose, ip)
}

// CheckIPRateLimitWithPurpose reports whether the IP exceeded the window
// limit for the given purpose
func (l *Limiter) CheckIPRateLimitWithPurpose(ctx context.Context, ip, purpose string) (bool, error) {
	count, err := l.client.Get(ctx, ipKey(ip, purpose)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check IP rate limit: %w", err)
	}

	return count >= ipMaxRequests, nil
}

// RecordIPRequestWithPurpose counts one request from the IP for the given
// purpose, starting the window on the first request
func (l *Limiter) RecordIPRequestWithPurpose(ctx context.Context, ip, purpose string) error {
	key := ipKey(ip, purpose)

	pipe := l.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ipWindow)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record IP request: %w", err)
	}

	return nil
}
