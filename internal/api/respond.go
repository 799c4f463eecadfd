package api

import (
	"encoding/json"
	"net/http"
	"time"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem writes the error body shape shared by every handler.
func WriteProblem(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, map[string]any{
		"error":      code,
		"message":    message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
