package pitchgate

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// BasicScheme is the literal prefix of a Basic Authorization header value.
	BasicScheme = "Basic "
	// MaxCredentials is the number of pairs accepted at once: current and next.
	MaxCredentials = 2
)

// CredentialSet holds the credential pairs accepted by the gateway.
// It is immutable after construction and safe for concurrent use.
type CredentialSet struct {
	creds []Credential
}

// NewCredentialSet creates a CredentialSet from one or two credential pairs.
// The first pair is the current credential, the optional second one is the
// rotation credential. Every pair must have a non-empty username and password.
func NewCredentialSet(creds ...Credential) (*CredentialSet, error) {
	if len(creds) == 0 {
		return nil, fmt.Errorf("new credential set: at least one credential is required: %w", ErrInvalidInput)
	}
	if len(creds) > MaxCredentials {
		return nil, fmt.Errorf("new credential set: at most %d credentials are allowed, got %d: %w", MaxCredentials, len(creds), ErrInvalidInput)
	}

	for i, c := range creds {
		if c.Username == "" || c.Password == "" {
			return nil, fmt.Errorf("new credential set: credential %d needs both username and password: %w", i, ErrInvalidInput)
		}
	}

	return &CredentialSet{creds: append([]Credential(nil), creds...)}, nil
}

// Len returns the number of configured credential pairs.
func (s *CredentialSet) Len() int {
	return len(s.creds)
}

// Verify reports whether the Authorization header value carries Basic
// credentials matching any configured pair.
//
// Usernames and passwords are compared in constant time, and every pair is
// evaluated even after a match, so the time taken does not depend on where
// the inputs first differ or on which pair matched. A length mismatch is
// rejected early; lengths are not secret.
func (s *CredentialSet) Verify(authorization string) bool {
	if s == nil {
		return false
	}

	user, pass, ok := ParseBasicAuth(authorization)
	if !ok {
		return false
	}

	matched := 0
	for _, c := range s.creds {
		matched |= constantTimeEqual(user, c.Username) & constantTimeEqual(pass, c.Password)
	}

	return matched == 1
}

// ParseBasicAuth extracts the username and password from a Basic
// Authorization header value. It returns ok=false when the scheme is missing,
// the payload is not valid base64 or UTF-8, or there is no ':' separator.
func ParseBasicAuth(authorization string) (user, pass string, ok bool) {
	if !strings.HasPrefix(authorization, BasicScheme) {
		return "", "", false
	}

	encoded := strings.TrimSpace(authorization[len(BasicScheme):])
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}

	if !utf8.Valid(decoded) {
		return "", "", false
	}

	return strings.Cut(string(decoded), ":")
}

func constantTimeEqual(a, b string) int {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b))
}
