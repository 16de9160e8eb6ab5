package pitchgate

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// IndexFile is served for the root path and substituted for directories.
const IndexFile = "index.html"

// ResolvePath maps a raw, still percent-encoded request path onto an absolute
// file path beneath root. root must be an absolute, clean directory path.
//
// It returns ErrForbidden when the path cannot be decoded, contains NUL
// bytes, climbs above the root through ".." segments, or otherwise resolves
// outside root. Backslashes are treated as path separators.
func ResolvePath(root, rawPath string) (string, error) {
	if rawPath == "" || rawPath == "/" {
		rawPath = "/" + IndexFile
	}

	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: decode: %w", ErrForbidden)
	}

	if strings.ContainsRune(decoded, 0) {
		return "", fmt.Errorf("resolve path: nul byte: %w", ErrForbidden)
	}

	rel := strings.ReplaceAll(decoded, `\`, "/")
	rel = path.Clean(strings.TrimLeft(rel, "/"))

	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("resolve path: traversal above root: %w", ErrForbidden)
	}

	candidate := filepath.Join(root, filepath.FromSlash(rel))
	if !IsWithinRoot(root, candidate) {
		return "", fmt.Errorf("resolve path: outside root: %w", ErrForbidden)
	}

	return candidate, nil
}

// IsWithinRoot reports whether candidate is root itself or a descendant of it,
// by literal prefix comparison on separator boundaries.
func IsWithinRoot(root, candidate string) bool {
	if candidate == root {
		return true
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(candidate, prefix)
}
