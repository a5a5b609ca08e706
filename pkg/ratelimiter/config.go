package ratelimiter

import (
	"fmt"
	"time"
)

type Config struct {
	Capacity       int           `env:"RATELIMIT_CAPACITY" envDefault:"0"`          // Capacity is the burst size; 0 disables inbound rate limiting.
	RefillRate     int           `env:"RATELIMIT_REFILL_RATE" envDefault:"1"`       // RefillRate is the number of tokens added per interval.
	RefillInterval time.Duration `env:"RATELIMIT_REFILL_INTERVAL" envDefault:"2s"` // RefillInterval is how often tokens are added.
}

// Enabled reports whether a bucket capacity is configured.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

// refillTime is how long an empty bucket takes to fill up again.
func (c Config) refillTime() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals) * c.RefillInterval
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}
