package main

import (
	"fmt"
	"os"

	"github.com/sagarc03/pitchgate/config"
	"github.com/sagarc03/pitchgate/filesystem"
)

// openStore resolves the configured root and opens a read-only store on it.
// The returned func closes the underlying os.Root.
func openStore(cfg *config.Config) (*filesystem.Store, func(), error) {
	dir, err := cfg.Storage.ResolveRoot()
	if err != nil {
		return nil, nil, err
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage root: %w", err)
	}

	return filesystem.NewFileStorage(root), func() { _ = root.Close() }, nil
}
