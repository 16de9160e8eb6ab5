// Package filesystem provides a read-only file system storage backend for
// pitchgate. All access goes through an os.Root, so symlinks placed inside
// the served directory cannot be followed outside of it.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sagarc03/pitchgate"
)

// Store provides file system storage operations.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root must have been opened with an absolute path; paths passed to the
// Store are absolute and are made relative to root.Name().
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Dir returns the absolute directory the store serves from.
func (s *Store) Dir() string {
	return s.root.Name()
}

// Stat returns file information. Returns pitchgate.ErrNotFound if the file does not exist.
func (s *Store) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := s.rel(path)
	if err != nil {
		return nil, err
	}

	info, err := s.root.Stat(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pitchgate.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return info, nil
}

// ReadFile reads the whole file. Returns pitchgate.ErrNotFound if the file does not exist.
func (s *Store) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := s.rel(path)
	if err != nil {
		return nil, err
	}

	f, err := s.root.Open(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pitchgate.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", rel, "err", closeErr)
		}
	}()

	body, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return body, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// rel converts an absolute path into one relative to the store root.
func (s *Store) rel(path string) (string, error) {
	rel, err := filepath.Rel(s.root.Name(), path)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", pitchgate.ErrForbidden)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("relative path: %s is outside the root: %w", path, pitchgate.ErrForbidden)
	}

	return rel, nil
}

// List recursively walks the root directory and returns all files with their
// size, SHA256-based etag and content type. Used to inventory what the
// gateway will expose.
func (s *Store) List(ctx context.Context) ([]pitchgate.AssetEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := []pitchgate.AssetEntry{}

	err := s.walkDir(ctx, ".", &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return entries, nil
}

func (s *Store) walkDir(ctx context.Context, path string, entries *[]pitchgate.AssetEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), path)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := filepath.ToSlash(filepath.Join(path, entry.Name()))

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, entries); err != nil {
				return err
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		f, err := s.root.Open(entryPath)
		if err != nil {
			return fmt.Errorf("walk dir: %w", err)
		}

		h := sha256.New()
		_, copyErr := io.Copy(h, f)

		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", entryPath, "err", closeErr)
		}

		if copyErr != nil {
			return fmt.Errorf("walk dir: %w", copyErr)
		}

		*entries = append(*entries, pitchgate.AssetEntry{
			Path:        entryPath,
			Size:        info.Size(),
			ETag:        hex.EncodeToString(h.Sum(nil)),
			ContentType: pitchgate.ContentTypeFor(entryPath),
		})
	}

	return nil
}
