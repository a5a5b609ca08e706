package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Limiter applies one token bucket configuration to many keys.
type Limiter struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source used for refills.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLimiter creates a Limiter backed by store.
func NewLimiter(store Store, cfg Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l := &Limiter{store: store, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Allow takes one token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.AllowN(ctx, key, 1)
}

// AllowN takes n tokens for key.
func (l *Limiter) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return l.take(ctx, key, n)
}

// Status reports the bucket for key without taking tokens.
func (l *Limiter) Status(ctx context.Context, key string) (Result, error) {
	return l.take(ctx, key, 0)
}

// Reset forgets the bucket for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

func (l *Limiter) take(ctx context.Context, key string, n int) (Result, error) {
	remaining, resetAt, err := l.store.Take(ctx, key, n, l.cfg, l.now())
	if err != nil {
		return Result{}, err
	}
	return Result{Limit: l.cfg.Capacity, Remaining: remaining, ResetAt: resetAt}, nil
}

// refill returns the token count and refill mark of a bucket after the
// intervals elapsed between last and now have been credited.
func refill(tokens int, last, now time.Time, cfg Config) (int, time.Time) {
	if now.Before(last) {
		return tokens, last
	}
	intervals := int64(now.Sub(last) / cfg.RefillInterval)
	if intervals == 0 {
		return tokens, last
	}
	// Capped so a long idle period cannot overflow the multiplication.
	credit := min(intervals, int64(cfg.Capacity/cfg.RefillRate+1)) * int64(cfg.RefillRate)
	tokens = int(min(int64(tokens)+credit, int64(cfg.Capacity)))
	return tokens, last.Add(time.Duration(intervals) * cfg.RefillInterval)
}
