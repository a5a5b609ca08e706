package relay

import "errors"

var (
	// ErrRegistryClosed is returned by Submit once Close has been called.
	ErrRegistryClosed = errors.New("relay registry is closed")

	// ErrNilDeliverer is returned when a registry is built without a Deliverer.
	ErrNilDeliverer = errors.New("deliverer cannot be nil")

	// ErrDelivererPanic wraps a recovered panic raised inside a Deliverer.
	ErrDelivererPanic = errors.New("deliverer panicked")

	// ErrMaxAttemptsReached is recorded when a payload is abandoned at the attempt cap.
	ErrMaxAttemptsReached = errors.New("maximum delivery attempts reached")
)
