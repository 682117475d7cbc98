package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tweetarchive/internal/archive"
	"tweetarchive/internal/store"
)

// classify maps a service error to an HTTP status and client message.
// Driver details are not sent to the client.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, archive.ErrInvalidPatch):
		return http.StatusBadRequest, archive.ErrInvalidPatch.Error()
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable, "database unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// writeError sends a JSON {"error": msg} response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
