// Package httpx provides JSON request/response utilities shared by all
// HTTP handlers. Handlers return domain errors; only this package maps
// them onto the wire.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape for every error response.
type ErrorBody struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error body with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// ValidationFields sends a 400 naming the offending fields.
func ValidationFields(w http.ResponseWriter, fields []string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Error: "ValidationError", Fields: fields})
}

// DecodeJSON decodes the request body into target, rejecting unknown
// fields so malformed payloads fail loudly instead of half-applying.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
