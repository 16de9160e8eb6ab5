package pitchgate

import (
	"time"
)

// Credential is a single username/password pair accepted by the gateway.
type Credential struct {
	Username string
	Password string
}

// Asset is a file read from beneath the root directory, ready to be served.
type Asset struct {
	Path        string
	ContentType string
	Body        []byte
	ModTime     time.Time
}

// AssetEntry describes a servable file without its content.
type AssetEntry struct {
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ETag        string `json:"etag"`
	ContentType string `json:"content_type"`
}
