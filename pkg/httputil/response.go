// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every bridge-originated error response.
// Details, Path and Method are omitted when empty; Details is only
// populated in development mode.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Path    string `json:"path,omitempty"`
	Method  string `json:"method,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response with the given status code.
func WriteError(w http.ResponseWriter, status int, body ErrorBody) {
	WriteJSON(w, status, body)
}

// MarshalError renders an ErrorBody to raw JSON bytes. Used where the
// response is built as payload bytes rather than written to a
// http.ResponseWriter directly.
func MarshalError(body ErrorBody) []byte {
	b, err := json.Marshal(body)
	if err != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return b
}
