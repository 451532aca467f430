package outbound

import (
	"context"
	"time"
)

// RateLimiterPort counts requests per key in a sliding window.
type RateLimiterPort interface {
	// Allow records one request for key and reports whether it fits the limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// GetRemaining returns how many more requests key may make in the window.
	GetRemaining(ctx context.Context, key string, limit int, window time.Duration) (int, error)
}
