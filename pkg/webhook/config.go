package webhook

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	URLTemplate    string        `env:"WEBHOOK_URL_TEMPLATE" envDefault:"https://discord.com/api/webhooks/%s/%s?wait=true"`
	ConnectTimeout time.Duration `env:"WEBHOOK_CONNECT_TIMEOUT" envDefault:"10s"`
	ReadTimeout    time.Duration `env:"WEBHOOK_READ_TIMEOUT" envDefault:"30s"`
	UserAgent      string        `env:"WEBHOOK_USER_AGENT" envDefault:"hookrelay-webhook/1.0"`
}

// Validate checks that the configuration can produce delivery URLs.
func (c Config) Validate() error {
	if n := strings.Count(c.URLTemplate, "%s"); n != 2 || strings.Count(c.URLTemplate, "%") != 2 {
		return fmt.Errorf("%w: url template must contain exactly two %%s verbs", ErrInvalidConfiguration)
	}
	if c.ConnectTimeout <= 0 || c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// NewSenderFromConfig validates cfg and creates a Sender from it.
// Extra options are applied after the configuration.
func NewSenderFromConfig(cfg Config, opts ...Option) (*Sender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configOpts := []Option{
		WithURLTemplate(cfg.URLTemplate),
		WithUserAgent(cfg.UserAgent),
		WithConnectTimeout(cfg.ConnectTimeout),
		WithReadTimeout(cfg.ReadTimeout),
	}
	return NewSender(append(configOpts, opts...)...), nil
}
