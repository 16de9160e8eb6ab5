package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sagarc03/pitchgate"
)

const (
	textContentType   = "text/plain; charset=utf-8"
	noStore           = "no-store"
	assetCacheControl = "private, max-age=300"
)

// Response is a fully shaped HTTP response: status, headers and body.
// It is built by the dispatcher and written exactly once by Send.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// TextResponse builds a plain text response that must not be cached.
func TextResponse(status int, body string) Response {
	h := make(http.Header)
	h.Set("Content-Type", textContentType)
	h.Set("Cache-Control", noStore)
	h.Set("X-Content-Type-Options", "nosniff")

	return Response{Status: status, Header: h, Body: []byte(body)}
}

// AssetResponse builds the 200 response carrying a file's bytes.
func AssetResponse(asset pitchgate.Asset) Response {
	h := make(http.Header)
	h.Set("Content-Type", asset.ContentType)
	h.Set("Cache-Control", assetCacheControl)
	h.Set("X-Content-Type-Options", "nosniff")

	return Response{Status: http.StatusOK, Header: h, Body: asset.Body}
}

// Send writes the response. HEAD requests get the headers only.
func (resp Response) Send(w http.ResponseWriter, r *http.Request) {
	dst := w.Header()
	for k, v := range resp.Header {
		dst[k] = v
	}
	dst.Set("Content-Length", strconv.Itoa(len(resp.Body)))

	w.WriteHeader(resp.Status)

	if r.Method == http.MethodHead {
		return
	}

	if _, err := w.Write(resp.Body); err != nil {
		slog.Debug("failed to write response body", "path", r.URL.Path, "error", err)
	}
}
