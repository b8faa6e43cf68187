package repositories

import "errors"

var (
	// ErrRecordNotFound is wrapped by lookups that match nothing.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is wrapped by inserts that violate a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)
