package httpapi

import "net/http"

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }

// internalError hides datastore detail from the caller; the handler logs it.
func internalError(w http.ResponseWriter) {
	writeErr(w, http.StatusInternalServerError, "internal server error", "internal")
}
