package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/pitchgate"
)

// ErrorResponse maps an error onto the terse plain text response of its class.
// Nothing from err itself ends up in the response.
func ErrorResponse(err error) Response {
	switch {
	case errors.Is(err, pitchgate.ErrUnauthenticated):
		return TextResponse(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, pitchgate.ErrForbidden):
		return TextResponse(http.StatusForbidden, "Forbidden")
	case errors.Is(err, pitchgate.ErrNotFound):
		return TextResponse(http.StatusNotFound, "Not found")
	default:
		return TextResponse(http.StatusInternalServerError, "Internal Server Error")
	}
}

// HandleError logs err and writes the matching error response.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	logError(r, err)
	ErrorResponse(err).Send(w, r)
}

func logError(r *http.Request, err error) {
	level := slog.LevelError
	switch {
	case errors.Is(err, pitchgate.ErrUnauthenticated), errors.Is(err, pitchgate.ErrNotFound):
		level = slog.LevelDebug
	case errors.Is(err, pitchgate.ErrForbidden):
		level = slog.LevelWarn
	}

	slog.Log(r.Context(), level, "request error", "method", r.Method, "path", r.URL.Path, "error", err)
}
