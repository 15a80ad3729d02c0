package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// FieldError pins a validation failure to a specific payload field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse is the JSON error envelope. Errors is only present for
// validation failures.
type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// respondJSON writes v as a JSON response
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondError writes a plain error message
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondFieldErrors writes a 400 with a structured validation-error list
func respondFieldErrors(w http.ResponseWriter, fields []FieldError) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Message: "validation failed",
		Errors:  fields,
	})
}

// decodeJSON decodes a request body into v, limited to 1MB
func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON payload")
	}
	return nil
}
