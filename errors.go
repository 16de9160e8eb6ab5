package pitchgate

import "errors"

var (
	// ErrNotFound is returned when the requested file does not exist under the root
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a request path escapes the root or fails sanitization
	ErrForbidden = errors.New("forbidden")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated is returned when credentials are missing or do not match
	ErrUnauthenticated = errors.New("unauthenticated")
)
