package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/rsclarke/hooktrap/internal/api"
)

// Client-facing error messages. Internal error detail never reaches the
// response body; it only goes to the log.
const (
	msgInvalidToken    = "Invalid token format. Tokens must be valid UUIDs (e.g., 550e8400-e29b-41d4-a716-446655440000)"
	msgInvalidCount    = "Invalid count. Must be a non-negative integer"
	msgTokenNotFound   = "Token not found"
	msgPayloadTooLarge = "Request body too large"
	msgInternal        = "Internal server error"
	msgNotFound        = "Resource not found"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.ErrorResponse{Error: message, Status: status})
}
