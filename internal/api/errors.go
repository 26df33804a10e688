package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/core"
)

const (
	kindValidation      = "ValidationError"
	kindNotFound        = "NotFound"
	kindForbidden       = "Forbidden"
	kindUnauthenticated = "Unauthenticated"
	kindStoreFailure    = "StoreFailure"

	internalErrorMessage = "internal server error"
)

type errorDetails struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetails `json:"error"`
}

func errorBody(kind, message string) errorResponse {
	return errorResponse{Error: errorDetails{Kind: kind, Message: message}}
}

// statusOf maps an error to its kind and HTTP status. Unknown errors are store
// failures.
func statusOf(err error) (string, int) {
	switch {
	case errors.Is(err, core.ErrValidation):
		return kindValidation, http.StatusBadRequest
	case errors.Is(err, core.ErrUnauthenticated):
		return kindUnauthenticated, http.StatusUnauthorized
	case errors.Is(err, core.ErrForbidden):
		return kindForbidden, http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return kindNotFound, http.StatusNotFound
	default:
		return kindStoreFailure, http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	kind, status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
		message = internalErrorMessage
	}

	writeJSON(w, status, errorBody(kind, message))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}
