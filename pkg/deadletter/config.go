package deadletter

type Config struct {
	Key        string `env:"DEADLETTER_KEY" envDefault:"hookrelay:deadletters"` // Key is the Redis list holding dead letters.
	MaxEntries int    `env:"DEADLETTER_MAX_ENTRIES" envDefault:"1000"`         // MaxEntries caps the archive size.
}

// Options converts the configuration into store options.
func (c Config) Options() []Option {
	return []Option{WithKey(c.Key), WithMaxEntries(c.MaxEntries)}
}
