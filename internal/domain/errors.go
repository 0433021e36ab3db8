// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is usually wrapped in a ValidationError naming the field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidName is returned when a first or last name is empty or too long.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidBirthDate is returned when a birth date is malformed or in the future.
	ErrInvalidBirthDate = errors.New("invalid birth date")

	// ErrInvalidContent is returned when tweet content is empty or too long.
	ErrInvalidContent = errors.New("invalid content")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. err is the more
// specific sentinel (ErrInvalidEmail, ...); it defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the specific sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrValidation so every ValidationError matches it,
// whatever sentinel it wraps.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
