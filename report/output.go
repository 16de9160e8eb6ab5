// Package report formats operator-facing command output for pitchgate as
// human-readable tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sagarc03/pitchgate"
)

// maxPathWidth caps the PATH column; longer paths are shortened from the left.
const maxPathWidth = 60

// CheckResult summarizes a validated configuration.
type CheckResult struct {
	Root        string `json:"root"`
	Addr        string `json:"addr"`
	Realm       string `json:"realm"`
	Credentials int    `json:"credentials"`
	Assets      int    `json:"assets"`
	HasIndex    bool   `json:"has_index"`
}

// Formatter formats results for output.
type Formatter interface {
	FormatAssets(w io.Writer, assets []pitchgate.AssetEntry) error
	FormatCheck(w io.Writer, result CheckResult) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct{}

// FormatAssets formats the asset inventory as an aligned table.
func (f *HumanFormatter) FormatAssets(w io.Writer, assets []pitchgate.AssetEntry) error {
	if len(assets) == 0 {
		_, _ = fmt.Fprintln(w, "No assets found")
		return nil
	}

	// Calculate column widths
	pathWidth := 4 // "PATH"
	typeWidth := 4 // "TYPE"
	for i := range assets {
		pathWidth = max(pathWidth, len(assets[i].Path))
		typeWidth = max(typeWidth, len(assets[i].ContentType))
	}
	pathWidth = min(pathWidth, maxPathWidth)

	_, _ = fmt.Fprintf(w, "%-*s  %10s  %-*s  %s\n", pathWidth, "PATH", "SIZE", typeWidth, "TYPE", "ETAG")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", pathWidth), strings.Repeat("-", 10), strings.Repeat("-", typeWidth), strings.Repeat("-", 12))

	var total int64
	for i := range assets {
		a := &assets[i]
		total += a.Size

		path := a.Path
		if len(path) > pathWidth {
			path = "..." + path[len(path)-pathWidth+3:]
		}

		etag := a.ETag
		if len(etag) > 12 {
			etag = etag[:12]
		}

		_, _ = fmt.Fprintf(w, "%-*s  %10s  %-*s  %s\n", pathWidth, path, humanize.IBytes(uint64(max(a.Size, 0))), typeWidth, a.ContentType, etag)
	}

	_, _ = fmt.Fprintf(w, "\n%d asset(s) (%s total)\n", len(assets), humanize.IBytes(uint64(max(total, 0))))
	return nil
}

// FormatCheck formats a configuration check as a short summary.
func (f *HumanFormatter) FormatCheck(w io.Writer, result CheckResult) error {
	_, _ = fmt.Fprintf(w, "Root:        %s\n", result.Root)
	_, _ = fmt.Fprintf(w, "Listen:      %s\n", result.Addr)
	_, _ = fmt.Fprintf(w, "Realm:       %s\n", result.Realm)
	_, _ = fmt.Fprintf(w, "Credentials: %d pair(s)\n", result.Credentials)
	_, _ = fmt.Fprintf(w, "Assets:      %d\n", result.Assets)
	if !result.HasIndex {
		_, _ = fmt.Fprintf(w, "Warning: no %s at the root, / will answer 404\n", pitchgate.IndexFile)
	}
	_, _ = fmt.Fprintln(w, "Configuration OK")
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatAssets formats the asset inventory as JSON.
func (f *JSONFormatter) FormatAssets(w io.Writer, assets []pitchgate.AssetEntry) error {
	if assets == nil {
		assets = []pitchgate.AssetEntry{}
	}

	var total int64
	for i := range assets {
		total += assets[i].Size
	}

	output := struct {
		Assets    []pitchgate.AssetEntry `json:"assets"`
		Count     int                    `json:"count"`
		TotalSize int64                  `json:"total_size_bytes"`
	}{
		Assets:    assets,
		Count:     len(assets),
		TotalSize: total,
	}
	return writeJSON(w, output)
}

// FormatCheck formats a configuration check as JSON.
func (f *JSONFormatter) FormatCheck(w io.Writer, result CheckResult) error {
	return writeJSON(w, result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
