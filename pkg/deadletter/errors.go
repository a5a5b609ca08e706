package deadletter

import "errors"

var (
	ErrNilClient    = errors.New("deadletter: redis client cannot be nil")
	ErrRecordFailed = errors.New("deadletter: failed to record entry")
	ErrReadFailed   = errors.New("deadletter: failed to read entries")
	ErrCorruptEntry = errors.New("deadletter: corrupt entry")
	ErrInvalidLimit = errors.New("deadletter: limit must be positive")
)
