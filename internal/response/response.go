// Package response provides shared JSON response helpers for HTTP handlers.
//
// Upload-path failures carry the Micropub error envelope
// {"error": "...", "error_description": "..."}; delivery-path failures are
// plain statuses with no body and are written directly by their handlers.
package response

import (
	"encoding/json"
	"net/http"
)

// Error is the Micropub error envelope.
type Error struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError writes an error envelope with the given status and error code.
func WriteError(w http.ResponseWriter, status int, code string) {
	JSON(w, status, Error{Error: code})
}

// WriteErrorDescription writes an error envelope including a human-readable description.
func WriteErrorDescription(w http.ResponseWriter, status int, code, description string) {
	JSON(w, status, Error{Error: code, ErrorDescription: description})
}

// Unauthorized writes a 401 "unauthorized" envelope.
func Unauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "unauthorized")
}

// InsufficientScope writes a 403 "insufficient_scope" envelope.
func InsufficientScope(w http.ResponseWriter) {
	WriteError(w, http.StatusForbidden, "insufficient_scope")
}

// InvalidRequest writes a 400 "invalid_request" envelope.
func InvalidRequest(w http.ResponseWriter, description string) {
	WriteErrorDescription(w, http.StatusBadRequest, "invalid_request", description)
}

// ServerError writes a 500 "server_error" envelope.
func ServerError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "server_error")
}
