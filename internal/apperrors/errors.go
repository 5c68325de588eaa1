package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes application errors so callers can react to the class of
// failure without string matching.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage"
	KindProcessing Kind = "processing"
	KindTimeout    Kind = "timeout"
	KindInternal   Kind = "internal"
)

// AppError is a structured application error carrying a kind and an HTTP
// status code for the transport layer.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Cause      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

func NewStorageError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindStorage,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

func NewProcessingError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindProcessing,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsKind reports whether err (or anything it wraps) is an AppError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
