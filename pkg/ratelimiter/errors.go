package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates that the bucket configuration is invalid.
	ErrInvalidConfig = errors.New("invalid rate limit configuration")

	// ErrInvalidTokenCount indicates that the requested token count is invalid.
	ErrInvalidTokenCount = errors.New("invalid token count")

	// ErrNilStore is returned when a limiter is built without a store.
	ErrNilStore = errors.New("rate limit store cannot be nil")

	// ErrStoreUnavailable wraps failures of the storage backend.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")
)
