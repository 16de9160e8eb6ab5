package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/pitchgate"
	pitchhttp "github.com/sagarc03/pitchgate/http"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "unauthenticated", err: pitchgate.ErrUnauthenticated, status: http.StatusUnauthorized, body: "Unauthorized"},
		{name: "forbidden", err: pitchgate.ErrForbidden, status: http.StatusForbidden, body: "Forbidden"},
		{name: "not found", err: pitchgate.ErrNotFound, status: http.StatusNotFound, body: "Not found"},
		{name: "wrapped not found", err: fmt.Errorf("fetch: %w", pitchgate.ErrNotFound), status: http.StatusNotFound, body: "Not found"},
		{name: "joined forbidden", err: errors.Join(errors.New("context"), pitchgate.ErrForbidden), status: http.StatusForbidden, body: "Forbidden"},
		{name: "internal", err: pitchgate.ErrInternal, status: http.StatusInternalServerError, body: "Internal Server Error"},
		{name: "unknown", err: errors.New("read /srv/pitch/a: input/output error"), status: http.StatusInternalServerError, body: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := pitchhttp.ErrorResponse(tt.err)

			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.body, string(resp.Body))
			assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
			assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
		})
	}
}

func TestHandleError_WritesOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)

	pitchhttp.HandleError(rec, req, pitchgate.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", rec.Body.String())
	assert.Equal(t, "9", rec.Header().Get("Content-Length"))
}

func TestAssetResponse(t *testing.T) {
	resp := pitchhttp.AssetResponse(pitchgate.Asset{
		ContentType: "audio/mp4",
		Body:        []byte{1, 2, 3},
	})

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "audio/mp4", resp.Header.Get("Content-Type"))
	assert.Equal(t, "private, max-age=300", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, []byte{1, 2, 3}, resp.Body)
}

func TestResponse_Send_Head(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("HEAD", "/healthz", nil)

	pitchhttp.TextResponse(http.StatusOK, "ok").Send(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Content-Length"))
	assert.Empty(t, rec.Body.Bytes())
}

func TestResponse_Send_KeepsExistingHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("WWW-Authenticate", "Basic")
	req := httptest.NewRequest("GET", "/", nil)

	pitchhttp.TextResponse(http.StatusUnauthorized, "Unauthorized").Send(rec, req)

	assert.Equal(t, "Basic", rec.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Unauthorized", rec.Body.String())
}
