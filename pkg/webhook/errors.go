package webhook

import "errors"

// Domain errors for webhook operations. Delivery errors wrap one of
// ErrPermanentFailure or ErrTemporaryFailure (ErrTimeout for deadlines) so
// callers can classify them with errors.Is.
var (
	ErrInvalidConfiguration = errors.New("invalid webhook configuration")
	ErrPermanentFailure     = errors.New("permanent webhook failure")
	ErrTemporaryFailure     = errors.New("temporary webhook failure")
	ErrInvalidURL           = errors.New("invalid webhook URL")
	ErrTimeout              = errors.New("webhook request timeout")
)

// IsPermanent reports whether err describes a delivery that must not be retried.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanentFailure)
}
