package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kozaktomas/face-console/internal/faceapi"
	"github.com/kozaktomas/face-console/internal/recognition"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondUpstreamError maps a console client error to a gateway response.
func respondUpstreamError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var apiErr *faceapi.APIError
	switch {
	case errors.Is(err, faceapi.ErrNoResponse):
		status = http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		status = http.StatusUnprocessableEntity
	}
	message, code := faceapi.ErrorDetails(err)
	respondJSON(w, status, map[string]any{"error": message, "code": code})
}

// respondReconciled writes a reconciled result. Upstream recognition failures
// are a normal outcome and use status 200; other errors get badInputStatus.
func respondReconciled(w http.ResponseWriter, result *recognition.NormalizedResult, err error, badInputStatus int) {
	var failed *recognition.ErrorResult
	switch {
	case errors.As(err, &failed):
		respondJSON(w, http.StatusOK, failed)
	case err != nil:
		respondError(w, badInputStatus, err.Error())
	default:
		respondJSON(w, http.StatusOK, result)
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
