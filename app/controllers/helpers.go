package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"agricare/app/services"
)

// sendJSON writes data as a JSON response
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError writes an error message as a JSON response
func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyContent):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrOwnPost), errors.Is(err, services.ErrFarmerOnly):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrLoad), errors.Is(err, services.ErrWrite):
		return http.StatusInternalServerError
	case strings.Contains(err.Error(), "not found"):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
