package handlers

import (
	"encoding/json"
	"net/http"

	"dochub/logging"
)

// respondJSON writes a JSON view record with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Default().Error("Failed to encode response", "error", err)
	}
}

// decodeJSONBody decodes a JSON request body into dst.
func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// errorBody is the wire shape of a handler-level error.
type errorBody struct {
	Error string `json:"error"`
}

// respondError writes a JSON error with the given status.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}
