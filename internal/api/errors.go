package api

import (
	"encoding/json"
	"net/http"

	"github.com/quantum-ledger/quantum-backend/internal/errors"
)

// ErrorBody is the wire shape of an error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// parseJSONBody parses JSON request body.
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(v)
}

// respondServiceError maps a service error to an HTTP response. Categorized
// errors carry their own status and code; anything else is an internal
// error whose detail stays out of the response.
func respondServiceError(w http.ResponseWriter, err error) {
	if catErr, ok := err.(*errors.CategorizedError); ok {
		respondError(w, catErr.StatusCode, catErr.Code, catErr.Message)
		return
	}

	respondError(w, http.StatusInternalServerError, errors.CodeInternal, "An internal error occurred")
}
