package apperr

import "errors"

var (
	// ErrInvalid is returned when the input is malformed (bad identifier, unreadable body).
	ErrInvalid = errors.New("invalid input")

	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a bearer token is missing or fails verification.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller's identity does not match the requested resource.
	ErrForbidden = errors.New("forbidden")
)
