package inbound

type Config struct {
	MaxBodyBytes int64 `env:"INBOUND_MAX_BODY_BYTES" envDefault:"1048576"` // MaxBodyBytes caps the accepted request body.
	// AdminRoutes exposes /stats and /deadletters. Dead letters carry
	// payloads and destination ids, so keep this off on a public listener.
	AdminRoutes bool `env:"INBOUND_ADMIN_ROUTES" envDefault:"false"`
}

// Options converts the configuration into handler options.
func (c Config) Options() []Option {
	return []Option{
		WithMaxBodyBytes(c.MaxBodyBytes),
		WithAdminRoutes(c.AdminRoutes),
	}
}
