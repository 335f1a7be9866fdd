// Package handlers exposes the engine's JSON API: the chat pipeline, the
// onboarding assessment, feedback capture and the evaluation metrics.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceErrorResponse maps service-layer sentinel errors to HTTP status
// codes. Unexpected errors become an opaque 500; raw error text is never
// serialized to clients.
func ServiceErrorResponse(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return ErrorResponse(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, apperrors.ErrInvalidFeedback):
		return ErrorResponse(w, http.StatusBadRequest, "invalid_feedback", err.Error())
	case errors.Is(err, apperrors.ErrInvalidAssessment):
		return ErrorResponse(w, http.StatusBadRequest, "invalid_assessment", err.Error())
	default:
		return ErrorResponse(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
