package internal

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldErrors maps a field name to the validation messages raised for it.
type FieldErrors map[string][]string

// ValidationError carries field-level validation failures. DTO Validate
// methods return it before any storage access happens; the transport layer
// renders it as a 400 with a field-keyed error map.
type ValidationError struct {
	Errors FieldErrors
}

func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make(FieldErrors)}
}

func (e *ValidationError) Add(field, message string) {
	e.Errors[field] = append(e.Errors[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for field, messages := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, ", ")))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// AppError is a service-level error that already knows its HTTP status.
type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: message}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Cause: cause}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}
