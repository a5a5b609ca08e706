package relay

import "time"

type Config struct {
	BackoffUnit     time.Duration `env:"RELAY_BACKOFF_UNIT" envDefault:"1s"`       // BackoffUnit is the linear step added per failed attempt.
	BackoffCeiling  time.Duration `env:"RELAY_BACKOFF_CEILING" envDefault:"2m"`    // BackoffCeiling caps the pause between attempts.
	MaxAttempts     int           `env:"RELAY_MAX_ATTEMPTS" envDefault:"0"`        // MaxAttempts abandons a payload after this many failures; 0 means never.
	ShutdownTimeout time.Duration `env:"RELAY_SHUTDOWN_TIMEOUT" envDefault:"10s"` // ShutdownTimeout bounds how long Close waits for in-flight attempts.
}

// NewRegistryFromConfig creates a Registry from cfg. Options passed in opts are
// applied after the ones derived from cfg and therefore win.
func NewRegistryFromConfig(cfg Config, d Deliverer, opts ...Option) (*Registry, error) {
	configOpts := []Option{
		WithBackoff(LinearBackoff{Unit: cfg.BackoffUnit, Ceiling: cfg.BackoffCeiling}),
		WithMaxAttempts(cfg.MaxAttempts),
	}
	return NewRegistry(d, append(configOpts, opts...)...)
}
