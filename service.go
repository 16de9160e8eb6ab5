package pitchgate

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
)

// FileStorage defines the read-only filesystem operations the gateway needs.
//
// All paths are absolute and have already passed ResolvePath. Implementations
// should respect context cancellation before doing any I/O.
type FileStorage interface {
	// Stat returns file information for the given path.
	//
	// Returns:
	//   - fs.FileInfo: information about the file or directory
	//   - error: ErrNotFound if the path doesn't exist, or other storage errors
	Stat(ctx context.Context, path string) (fs.FileInfo, error)

	// ReadFile returns the full content of the file at path.
	//
	// Returns:
	//   - []byte: the file content
	//   - error: ErrNotFound if the path doesn't exist, or other storage errors
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Gateway resolves request paths to files beneath a fixed root directory.
type Gateway struct {
	root    string
	storage FileStorage
}

// NewGateway creates a Gateway serving files beneath root through storage.
// root must be an absolute path.
func NewGateway(root string, storage FileStorage) (*Gateway, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("new gateway: root must be absolute: %s: %w", root, ErrInvalidInput)
	}
	if storage == nil {
		return nil, fmt.Errorf("new gateway: storage is required: %w", ErrInvalidInput)
	}

	return &Gateway{
		root:    filepath.Clean(root),
		storage: storage,
	}, nil
}

// Root returns the absolute root directory.
func (g *Gateway) Root() string {
	return g.root
}

// Fetch resolves rawPath and reads the file it points to.
//
// A directory is retried once as <dir>/index.html. The returned error wraps
// ErrForbidden when the path escapes the root, ErrNotFound when nothing is
// there to serve, and is any other storage error otherwise.
func (g *Gateway) Fetch(ctx context.Context, rawPath string) (Asset, error) {
	path, err := ResolvePath(g.root, rawPath)
	if err != nil {
		return Asset{}, err
	}

	info, err := g.storage.Stat(ctx, path)
	if err != nil {
		return Asset{}, fmt.Errorf("fetch: %w", err)
	}

	if info.IsDir() {
		path = filepath.Join(path, IndexFile)

		info, err = g.storage.Stat(ctx, path)
		if err != nil {
			return Asset{}, fmt.Errorf("fetch index: %w", err)
		}

		if info.IsDir() {
			return Asset{}, fmt.Errorf("fetch index: %s is a directory: %w", IndexFile, ErrNotFound)
		}
	}

	body, err := g.storage.ReadFile(ctx, path)
	if err != nil {
		return Asset{}, fmt.Errorf("fetch: %w", err)
	}

	return Asset{
		Path:        path,
		ContentType: ContentTypeFor(path),
		Body:        body,
		ModTime:     info.ModTime(),
	}, nil
}
