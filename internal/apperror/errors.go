// Package apperror carries an HTTP status and a client-safe message with
// domain errors. Infrastructure errors are wrapped with NewInternal so their
// details only reach the logs.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type returned across service boundaries.
type AppError struct {
	Code     int    `json:"-"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Internal }

func newErr(code int, typ, message string) *AppError {
	return &AppError{Code: code, Type: typ, Message: message}
}

func NewBadRequest(message string) *AppError {
	return newErr(http.StatusBadRequest, "bad_request", message)
}

func NewUnauthorized(message string) *AppError {
	return newErr(http.StatusUnauthorized, "unauthorized", message)
}

func NewForbidden(message string) *AppError {
	return newErr(http.StatusForbidden, "forbidden", message)
}

func NewNotFound(message string) *AppError {
	return newErr(http.StatusNotFound, "not_found", message)
}

func NewConflict(message string) *AppError {
	return newErr(http.StatusConflict, "conflict", message)
}

// NewUnavailable is returned while the service cannot take requests yet.
func NewUnavailable(message string) *AppError {
	return newErr(http.StatusServiceUnavailable, "unavailable", message)
}

// NewValidation is returned when input is rejected without any state change.
func NewValidation(message string) *AppError {
	return newErr(http.StatusUnprocessableEntity, "validation_error", message)
}

// NewInternal hides err behind a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// SafeMessage returns a message that is safe to send to clients.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeCode returns the HTTP status for err, 500 for anything that is not an AppError.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// SafeType returns the machine-readable classifier for err.
func SafeType(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return "internal_error"
}

// Is reports whether err is an AppError with the given HTTP status.
func Is(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
