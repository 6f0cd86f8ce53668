package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrorCodeValidationError     ErrorCode = "VALIDATION_ERROR"
	ErrorCodeExtractionFailed    ErrorCode = "EXTRACTION_FAILED"
	ErrorCodeUpstreamFetchFailed ErrorCode = "UPSTREAM_FETCH_FAILED"
	ErrorCodeFilesystemError     ErrorCode = "FILESYSTEM_ERROR"
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func wrapError(code ErrorCode, err error, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    err.Error(),
		StatusCode: statusCode,
		Err:        err,
	}
}

// AsAppError returns err as an *AppError, classifying anything unknown as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return wrapError(ErrorCodeInternalError, err, http.StatusInternalServerError)
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return NewError(ErrorCodeValidationError, message, http.StatusBadRequest)
}

func NewExtractionError(err error) *AppError {
	return wrapError(ErrorCodeExtractionFailed, err, http.StatusBadGateway)
}

func NewUpstreamFetchError(message string) *AppError {
	return NewError(ErrorCodeUpstreamFetchFailed, message, http.StatusBadGateway)
}

func NewFilesystemError(err error) *AppError {
	return wrapError(ErrorCodeFilesystemError, err, http.StatusInternalServerError)
}

func NewUnauthorizedError() *AppError {
	return NewError(
		ErrorCodeUnauthorized,
		"Invalid API Key",
		http.StatusUnauthorized,
	)
}
