package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DetailResponse is the body shape for non-field errors: authentication
// failures, not-found, CSRF rejection, throttling.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// FieldErrors maps request field names to their validation error messages.
// Validation failures are always reported this way so that clients can
// attach messages to form inputs.
type FieldErrors map[string][]string

// Add appends a message for the given field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// NonFieldErrorsKey is the pseudo-field used for errors that do not belong
// to a single input, e.g. the uniform bad-credentials message on login.
const NonFieldErrorsKey = "non_field_errors"

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithDetail writes a {"detail": ...} error body with the given
// status code, logging the response with the request's trace ID.
func RespondWithDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	traceID := GetTraceID(r.Context())

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if status == http.StatusTooManyRequests {
		// Rate limiting is an operational concern, keep it visible.
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.Int("status_code", status),
		slog.String("detail", detail),
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, DetailResponse{Detail: detail})
}

// RespondWithFieldErrors writes a 400 response whose body maps field names
// to validation error messages.
func RespondWithFieldErrors(w http.ResponseWriter, r *http.Request, fields FieldErrors) {
	slog.Debug("validation error response",
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method,
		"field_count", len(fields))

	RespondWithJSON(w, r, http.StatusBadRequest, fields)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
