package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// It marshals before writing headers so an encoding failure never produces
// a partial response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// ErrorBody is the wire shape for error responses: a list of error objects
// each carrying a human-readable title.
type ErrorBody struct {
	Errors []ErrorObject `json:"errors"`
}

// ErrorObject is one reported error
type ErrorObject struct {
	Title string `json:"title"`
}

// RespondError writes an error response with the given status code and
// message.
func RespondError(w http.ResponseWriter, status int, message string) {
	body := ErrorBody{Errors: []ErrorObject{{Title: message}}}

	payload, err := json.Marshal(body)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
