package keybackend

import "errors"

var (
	// ErrNoCredentials is returned when neither a primary pair nor a keys file is configured.
	ErrNoCredentials = errors.New("primary credentials are required")
	// ErrIncompleteCredentials is returned when a pair has a username without a password or vice versa.
	ErrIncompleteCredentials = errors.New("credentials need both username and password")
)
