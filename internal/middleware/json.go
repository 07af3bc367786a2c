package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the API's failure envelope.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeError sends a failure envelope with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Success: false, Message: message})
}
