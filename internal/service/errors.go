package service

import "errors"

var (
	// ErrNameRequired indicates a create request with an empty or
	// whitespace-only name.
	ErrNameRequired = errors.New("name is required")
	// ErrUserIDRequired indicates a claim request without a user ID.
	ErrUserIDRequired = errors.New("user ID is required")
	// ErrUserExists is returned when a user with the requested name already exists.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user ID resolves no user.
	ErrUserNotFound = errors.New("user not found")
)
