package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope of the API: status is "fail" for client
// errors and "error" for server-side failures.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	statusWord := "fail"
	if status >= http.StatusInternalServerError {
		statusWord = "error"
	}
	WriteJSON(w, status, ErrorResponse{Status: statusWord, Message: message})
}

func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
