package deadletter

// Option configures a store.
type Option func(*storeOptions)

type storeOptions struct {
	key        string
	maxEntries int
}

func defaultOptions() *storeOptions {
	return &storeOptions{
		key:        DefaultKey,
		maxEntries: DefaultMaxEntries,
	}
}

// WithKey sets the Redis list key. Ignored by MemoryStore.
func WithKey(key string) Option {
	return func(o *storeOptions) {
		if key != "" {
			o.key = key
		}
	}
}

// WithMaxEntries caps how many entries are kept. Older entries are evicted.
func WithMaxEntries(n int) Option {
	return func(o *storeOptions) {
		if n > 0 {
			o.maxEntries = n
		}
	}
}
