package ratelimiter

import (
	"context"
	"time"
)

// Store keeps token bucket state per key.
type Store interface {
	// Take refills the bucket for key as of now and removes n tokens if that
	// many are available. It returns the tokens left, negative when the
	// request does not fit, and the time of the next refill. A denied request
	// leaves the bucket untouched. n == 0 only reports the current state.
	Take(ctx context.Context, key string, n int, cfg Config, now time.Time) (remaining int, resetAt time.Time, err error)

	// Reset forgets the bucket for key.
	Reset(ctx context.Context, key string) error
}
