package store

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by
	// somebody else. Callers cannot tell the two apart, which keeps
	// project ids unenumerable.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")

	ErrInvalidCredentials = errors.New("incorrect username or password")
)
