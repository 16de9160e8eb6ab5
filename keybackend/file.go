package keybackend

import (
	"encoding/json"
	"fmt"
	"os"
)

// KeyPair represents a username and password pair.
type KeyPair struct {
	Username string `json:"username" mapstructure:"username" yaml:"username,omitempty" validate:"required_with=Password"`
	Password string `json:"password" mapstructure:"password" yaml:"password,omitempty" validate:"required_with=Username"`
}

// IsZero reports whether neither field is set.
func (p KeyPair) IsZero() bool {
	return p.Username == "" && p.Password == ""
}

// IsComplete reports whether both fields are set.
func (p KeyPair) IsComplete() bool {
	return p.Username != "" && p.Password != ""
}

// LoadKeysFromFile loads credential pairs from a JSON file.
// The file should contain an array of one or two pairs, current first:
//
//	[
//	  {"username": "pitch", "password": "current-secret"},
//	  {"username": "pitch", "password": "next-secret"}
//	]
//
// A pair with only one of its fields set is an error.
func LoadKeysFromFile(path string) ([]KeyPair, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}

	var pairs []KeyPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse keys file: %w", err)
	}

	keys := make([]KeyPair, 0, len(pairs))
	for i, p := range pairs {
		if p.IsZero() {
			continue
		}
		if !p.IsComplete() {
			return nil, fmt.Errorf("parse keys file: entry %d: %w", i, ErrIncompleteCredentials)
		}
		keys = append(keys, p)
	}

	return keys, nil
}
