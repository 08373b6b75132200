// Package response holds the helpers every handler uses to emit JSON,
// so the API speaks one envelope shape for errors across all routes.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope returned by the API.
// Details is optional and carries extra context, such as per-field
// validation messages.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status code.
// A nil data writes the status code alone.
// Encoding errors are logged; by then the status is already on the wire.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes an ErrorResponse with the given status code.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "invalid transaction", verr.Fields)
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}
