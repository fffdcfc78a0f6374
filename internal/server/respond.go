package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/desertthunder/petstore/internal/shared"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Reason     string `json:"reason"`
	Timestamp  string `json:"timestamp"`
	URI        string `json:"uri"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusFor maps service errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrOwnershipMismatch), errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Message:    message,
		StatusCode: status,
		Reason:     http.StatusText(status),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		URI:        r.URL.RequestURI(),
	})
}

// respondErr writes err with the status from [StatusFor].
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, StatusFor(err), err.Error())
}
