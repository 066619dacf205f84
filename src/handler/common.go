package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/apperrors"
)

// ErrorResponse is the standard error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the full aggregated issue list.
type ValidationErrorResponse struct {
	Errors []apperrors.FieldError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses: aggregated
// validation issues are 422, malformed query parameters 400, a missing
// record 404, anything else a plain 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if verr, ok := apperrors.AsValidationErrors(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{Errors: verr.Issues})
		return
	}
	if qerr, ok := apperrors.AsMalformedQueryError(err); ok {
		writeError(w, http.StatusBadRequest, qerr.Error())
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Trade not found")
		return
	}
	logger.WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
