package relay

import "context"

// Outcome classifies a single delivery attempt.
type Outcome int

const (
	// Success means the destination accepted the payload.
	Success Outcome = iota
	// RetryableFailure means the same payload should be tried again later.
	RetryableFailure
	// PermanentFailure means retrying can never succeed; the payload is dropped.
	PermanentFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case RetryableFailure:
		return "retryable_failure"
	case PermanentFailure:
		return "permanent_failure"
	default:
		return "unknown"
	}
}

// Result is what a Deliverer reports for one attempt.
// StatusCode is zero when no response was received. Body holds the response
// body of a failed attempt, as read by the Deliverer.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Err        error
	Body       []byte
}

// Deliverer performs exactly one delivery attempt and classifies its outcome.
// It must bound its own network I/O with finite timeouts.
type Deliverer interface {
	Deliver(ctx context.Context, dest Destination, payload Payload, attempt int) Result
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, dest Destination, payload Payload, attempt int) Result

func (f DelivererFunc) Deliver(ctx context.Context, dest Destination, payload Payload, attempt int) Result {
	return f(ctx, dest, payload, attempt)
}
