package clientip

type Config struct {
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","` // TrustedHeaders are proxy headers consulted before RemoteAddr, e.g. "CF-Connecting-IP,X-Forwarded-For".
}

// Resolver builds a Resolver trusting the configured headers.
func (c Config) Resolver() Resolver {
	return NewResolver(c.TrustedHeaders...)
}
