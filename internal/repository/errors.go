package repository

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by someone else;
	// callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a write would violate the users
	// email uniqueness constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)
