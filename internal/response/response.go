// Package response writes the JSON envelope every API endpoint answers with.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every API response
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Success writes a successful envelope carrying data
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Error writes a failed envelope. errMsg is optional detail.
func Error(w http.ResponseWriter, status int, message, errMsg string) {
	JSON(w, status, Envelope{Success: false, Message: message, Error: errMsg})
}

// ValidationError writes a 400 envelope with per-field messages
func ValidationError(w http.ResponseWriter, fields map[string][]string) {
	JSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation error",
		Error:   "Validation error",
		Errors:  fields,
	})
}
