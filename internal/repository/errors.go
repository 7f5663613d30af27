package repository

import "errors"

// Sentinel errors shared by repository implementations.
var (
	// ErrNotFound is returned when a lookup resolves no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when a user insert violates the unique
	// name constraint.
	ErrDuplicateName = errors.New("user already exists")
)
