package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no documentation is stored under a key.
	ErrNotFound = errors.New("documentation not found")

	// ErrInvalidKey is returned when an API id or format cannot form a KV key.
	ErrInvalidKey = errors.New("invalid storage key")
)
