package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPingTimeout bounds a single readiness ping when none is configured.
const DefaultPingTimeout = 2 * time.Second

// Pinger is the part of a go-redis client the readiness check needs.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Healthcheck returns a readiness check for httpserver.Check. Each call pings
// the server under its own timeout so a hung connection cannot stall the
// /health/ready response. Failures wrap ErrUnhealthy.
func Healthcheck(client Pinger, timeout time.Duration) func(context.Context) error {
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w after %s: %w", ErrUnhealthy, time.Since(start).Round(time.Millisecond), err)
		}
		return nil
	}
}
