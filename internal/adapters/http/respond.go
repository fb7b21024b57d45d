package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"fittrack/internal/application/apperr"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response_encode_failed", "error", err.Error())
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps an action failure to its HTTP status.
// Storage failures are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	errors.As(err, &ae)
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated:
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: ae.Message})
	case apperr.KindForbidden:
		writeJSON(w, http.StatusForbidden, errorBody{Error: ae.Message})
	case apperr.KindInvalidInput:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: ae.Message, Field: ae.Field})
	case apperr.KindConflict:
		writeJSON(w, http.StatusConflict, errorBody{Error: ae.Message})
	default:
		internalError(w, r, err)
	}
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal_error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

// badJSON answers a body that does not decode into the expected shape.
func badJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON"})
}
