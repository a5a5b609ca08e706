package relay

import (
	"context"
	"time"
)

// DeadLetter describes a payload the registry gave up on.
type DeadLetter struct {
	Destination Destination
	Payload     Payload
	StatusCode  int
	Body        []byte // response body of the last attempt
	Reason      error
	Attempts    int
	FailedAt    time.Time
}

// DeadLetterSink archives dropped payloads for operators. Record errors are
// logged by the registry and never retried.
type DeadLetterSink interface {
	Record(ctx context.Context, dl DeadLetter) error
}
