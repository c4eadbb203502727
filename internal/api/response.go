// Package api implements HTTP handlers for the reference data service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"refdataservice/internal/refdata"
	"refdataservice/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"ref data is not available: BTC"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service and domain errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, refdata.ErrDifferentArrayLength),
		errors.Is(err, service.ErrInvalidSymbol):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, refdata.ErrRefDataNotAvailable):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, refdata.ErrInvalidQuoteRate),
		errors.Is(err, refdata.ErrRateOverflow):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, refdata.ErrNotInitialized),
		errors.Is(err, service.ErrAsyncDisabled):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}
