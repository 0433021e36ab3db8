package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathPositiveInt extracts a path parameter that must be an integer greater than zero.
func getPathPositiveInt(r *http.Request, paramName string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, paramName))
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrInvalidID)
	}
	if n <= 0 {
		return 0, domain.NewValidationError(paramName, "must be greater than 0", domain.ErrInvalidID)
	}
	return n, nil
}

// parseOptionalUUID parses s as a UUID; an empty string yields uuid.Nil.
// An explicit nil UUID is rejected so it cannot be mistaken for "absent".
func parseOptionalUUID(field, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "has invalid format", domain.ErrInvalidID)
	}
	if id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(field, "must not be the nil UUID", domain.ErrInvalidID)
	}
	return id, nil
}
