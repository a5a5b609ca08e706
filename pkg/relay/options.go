package relay

import (
	"log/slog"
	"time"
)

// Option configures a Registry.
type Option func(*options)

type options struct {
	backoff           BackoffPolicy
	maxAttempts       int
	logger            *slog.Logger
	deadLetters       DeadLetterSink
	deadLetterTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		backoff:           DefaultBackoff(),
		logger:            slog.Default(),
		deadLetterTimeout: 5 * time.Second,
	}
}

// WithBackoff sets the pause schedule between retries of the same payload.
func WithBackoff(policy BackoffPolicy) Option {
	return func(o *options) {
		if policy != nil {
			o.backoff = policy
		}
	}
}

// WithMaxAttempts abandons a payload after n failed attempts.
// Zero (the default) retries retryable failures forever.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used by workers.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDeadLetterSink archives payloads that are dropped or abandoned.
func WithDeadLetterSink(sink DeadLetterSink) Option {
	return func(o *options) {
		o.deadLetters = sink
	}
}

// WithDeadLetterTimeout bounds a single DeadLetterSink.Record call.
func WithDeadLetterTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.deadLetterTimeout = d
		}
	}
}
