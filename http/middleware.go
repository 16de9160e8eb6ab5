package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sagarc03/pitchgate"
)

// RequestIDHeader carries the request id assigned by RequestLogger.
const RequestIDHeader = "X-Request-Id"

// RequestVerifier decides whether an Authorization header value is accepted.
// *pitchgate.CredentialSet implements it.
type RequestVerifier interface {
	Verify(authorization string) bool
}

// AuthMiddleware creates middleware that enforces HTTP Basic authentication.
// Rejected requests get a 401 with a Basic challenge for realm. A nil
// verifier rejects every request.
func AuthMiddleware(verifier RequestVerifier, realm string) func(http.Handler) http.Handler {
	challenge := BasicChallenge(realm)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil || !verifier.Verify(r.Header.Get("Authorization")) {
				w.Header().Set("WWW-Authenticate", challenge)
				HandleError(w, r, pitchgate.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BasicChallenge returns the WWW-Authenticate value for realm.
func BasicChallenge(realm string) string {
	return fmt.Sprintf(`Basic realm=%s, charset="UTF-8"`, strconv.Quote(realm))
}

// RequestLogger logs one line per request with its status, size and duration.
// A valid UUID in the X-Request-Id header is reused, otherwise a new one is
// assigned and echoed back. Health checks are logged at debug level.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if r.URL.Path == HealthPath {
			level = slog.LevelDebug
		}

		slog.Log(r.Context(), level, "request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
