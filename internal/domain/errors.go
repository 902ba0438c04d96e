package domain

import (
	"errors"
	"net/http"
)

// AppError is the single classified error type used across the service.
// Status mirrors HTTP status classes even when the error never crosses an
// HTTP boundary.
type AppError struct {
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError builds a classified error with an explicit status class.
func NewAppError(message string, status int) *AppError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &AppError{Message: message, Status: status}
}

// AsAppError unwraps err into a classified error if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
