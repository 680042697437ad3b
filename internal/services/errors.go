package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap these
// with context via fmt.Errorf("...: %w", ...) so errors.Is still matches.
var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else; callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks user-correctable validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials marks a failed login or password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyExists marks a uniqueness violation on registration.
	ErrAlreadyExists = errors.New("already exists")
)
