// Package shared holds the response envelope and request helpers used by
// every handler.
package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response wrapper. Every endpoint, success or
// failure, replies with this shape; unused fields are omitted.
type Envelope struct {
	Success    bool     `json:"success"`
	Data       any      `json:"data,omitempty"`
	Error      string   `json:"error,omitempty"`
	Errors     []string `json:"errors,omitempty"`
	Message    string   `json:"message,omitempty"`
	Count      *int     `json:"count,omitempty"`
	SearchTerm string   `json:"searchTerm,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithData writes a success envelope carrying data.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	RespondWithJSON(w, r, status, Envelope{Success: true, Data: data})
}

// RespondWithMessage writes a success envelope carrying data and an
// operation message ("Cliente creado exitosamente", ...).
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	RespondWithJSON(w, r, status, Envelope{Success: true, Message: message, Data: data})
}

// RespondWithList writes a success envelope carrying a list and its count.
func RespondWithList(w http.ResponseWriter, r *http.Request, data any, count int) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// RespondWithSearchResults writes a list envelope that echoes the search
// term back to the caller.
func RespondWithSearchResults(w http.ResponseWriter, r *http.Request, data any, count int, term string) {
	RespondWithJSON(w, r, http.StatusOK, Envelope{
		Success:    true,
		Data:       data,
		Count:      &count,
		SearchTerm: term,
	})
}

// RespondWithError writes a failure envelope with a single error message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, Envelope{Success: false, Error: message})
}

// RespondWithValidationErrors writes a 400 envelope carrying the full list
// of field violations collected during validation.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, errs []string) {
	slog.Debug("sending validation error response",
		"errors", errs,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path)

	RespondWithJSON(w, r, http.StatusBadRequest, Envelope{Success: false, Errors: errs})
}
