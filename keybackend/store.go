// Package keybackend loads the credential pairs accepted by the gateway.
package keybackend

import (
	"errors"
	"fmt"

	"github.com/sagarc03/pitchgate"
)

// KeysConfig holds configuration for loading credentials.
type KeysConfig struct {
	Primary KeyPair `mapstructure:"primary" yaml:"primary"`        // Current credentials
	Next    KeyPair `mapstructure:"next" yaml:"next,omitempty"`    // Optional rotation credentials
	File    string  `mapstructure:"file" yaml:"file,omitempty"`    // Path to JSON file containing pairs
}

// Validate checks that a primary pair (or a keys file) is configured and
// that no pair is only half specified.
func (c KeysConfig) Validate() error {
	if !c.Primary.IsZero() && !c.Primary.IsComplete() {
		return fmt.Errorf("validate auth: primary: %w", ErrIncompleteCredentials)
	}

	if !c.Next.IsZero() && !c.Next.IsComplete() {
		return fmt.Errorf("validate auth: rotation credentials are incomplete, set both username and password or neither: %w", ErrIncompleteCredentials)
	}

	if c.File != "" {
		return nil
	}

	if c.Primary.IsZero() {
		if !c.Next.IsZero() {
			return errors.New("validate auth: rotation credentials require primary credentials")
		}
		return fmt.Errorf("validate auth: %w", ErrNoCredentials)
	}

	return nil
}

// NewCredentialSet creates a CredentialSet from the given configuration.
// Pairs from the keys file, when one is configured, take precedence over the
// inline primary and rotation pairs.
func NewCredentialSet(cfg KeysConfig) (*pitchgate.CredentialSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pairs := []KeyPair{cfg.Primary}
	if cfg.Next.IsComplete() {
		pairs = append(pairs, cfg.Next)
	}

	if cfg.File != "" {
		fileKeys, err := LoadKeysFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		if len(fileKeys) == 0 {
			return nil, fmt.Errorf("load keys file %s: %w", cfg.File, ErrNoCredentials)
		}
		pairs = fileKeys
	}

	creds := make([]pitchgate.Credential, 0, len(pairs))
	for _, p := range pairs {
		creds = append(creds, pitchgate.Credential{Username: p.Username, Password: p.Password})
	}

	return pitchgate.NewCredentialSet(creds...)
}
