package relay

import "time"

const (
	DefaultBackoffUnit    = time.Second
	DefaultBackoffCeiling = 2 * time.Minute
)

// BackoffPolicy maps the number of failed attempts so far to the pause before
// the next one. Implementations must be safe for concurrent use.
type BackoffPolicy interface {
	Delay(attempt int) time.Duration
}

// BackoffFunc adapts a plain function to BackoffPolicy.
type BackoffFunc func(attempt int) time.Duration

func (f BackoffFunc) Delay(attempt int) time.Duration { return f(attempt) }

// LinearBackoff waits (attempt-1)*Unit, clamped to [0, Ceiling].
// Attempts 0 and 1 yield no delay. No jitter is applied.
type LinearBackoff struct {
	Unit    time.Duration
	Ceiling time.Duration
}

// Delay returns the pause before the next attempt.
func (l LinearBackoff) Delay(attempt int) time.Duration {
	unit := l.Unit
	if unit <= 0 {
		unit = DefaultBackoffUnit
	}
	ceiling := l.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultBackoffCeiling
	}

	if attempt <= 1 {
		return 0
	}

	steps := time.Duration(attempt - 1)
	// Compare before multiplying so huge attempt counts cannot overflow.
	if steps > ceiling/unit {
		return ceiling
	}
	delay := unit * steps
	if delay > ceiling {
		return ceiling
	}
	return delay
}

// DefaultBackoff returns one second per attempt capped at two minutes.
func DefaultBackoff() BackoffPolicy {
	return LinearBackoff{Unit: DefaultBackoffUnit, Ceiling: DefaultBackoffCeiling}
}
