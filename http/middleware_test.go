package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sagarc03/pitchgate"
	pitchhttp "github.com/sagarc03/pitchgate/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestAuthMiddleware_ValidCredentials(t *testing.T) {
	wrapped := pitchhttp.AuthMiddleware(newCredentials(t, primary), "Pitch Industrial")(okHandler())

	req := httptest.NewRequest("GET", "/index.html", nil)
	req.Header.Set("Authorization", basicAuth("pitch", "s3cret"))
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_NoCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})
	wrapped := pitchhttp.AuthMiddleware(newCredentials(t, primary), "Pitch Industrial")(handler)

	req := httptest.NewRequest("GET", "/index.html", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="Pitch Industrial", charset="UTF-8"`, rec.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_NilVerifierRejects(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})
	wrapped := pitchhttp.AuthMiddleware(nil, "Pitch Industrial")(handler)

	req := httptest.NewRequest("GET", "/index.html", nil)
	req.Header.Set("Authorization", basicAuth("pitch", "s3cret"))
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NilCredentialSetRejects(t *testing.T) {
	var set *pitchgate.CredentialSet
	wrapped := pitchhttp.AuthMiddleware(set, "Pitch Industrial")(okHandler())

	req := httptest.NewRequest("GET", "/index.html", nil)
	req.Header.Set("Authorization", basicAuth("pitch", "s3cret"))
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicChallenge_QuotesRealm(t *testing.T) {
	assert.Equal(t, `Basic realm="say \"hi\"", charset="UTF-8"`, pitchhttp.BasicChallenge(`say "hi"`))
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	wrapped := pitchhttp.RequestLogger(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	id := rec.Header().Get(pitchhttp.RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_ReusesValidRequestID(t *testing.T) {
	wrapped := pitchhttp.RequestLogger(okHandler())
	id := uuid.NewString()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(pitchhttp.RequestIDHeader, id)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(pitchhttp.RequestIDHeader))
}

func TestRequestLogger_ReplacesInvalidRequestID(t *testing.T) {
	wrapped := pitchhttp.RequestLogger(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(pitchhttp.RequestIDHeader, "not a uuid\nforged=1")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	id := rec.Header().Get(pitchhttp.RequestIDHeader)
	assert.NotEqual(t, "not a uuid\nforged=1", id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRouter_RecoversPanics(t *testing.T) {
	service := new(MockService)
	service.On("Fetch", mock.Anything, "/boom").Run(func(args mock.Arguments) {
		panic("boom")
	})

	router := pitchhttp.NewHandler(&pitchhttp.HandlerConfig{Verifier: newCredentials(t, primary)}, service).Router()

	req := httptest.NewRequest("GET", "/boom", nil)
	req.Header.Set("Authorization", basicAuth("pitch", "s3cret"))
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { router.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
