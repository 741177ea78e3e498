package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
	ErrorTypeCorruptImage      ErrorType = "corrupt_image"
	ErrorTypeRemoteProvider    ErrorType = "remote_provider"
	ErrorTypeRemoteTimeout     ErrorType = "remote_timeout"
	ErrorTypeRemoteAuth        ErrorType = "remote_auth"
	ErrorTypeProcessing        ErrorType = "processing"
	ErrorTypeInternal          ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	// ProviderStatus holds the upstream HTTP status for remote provider errors
	ProviderStatus int   `json:"provider_status,omitempty"`
	Cause          error `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnsupportedFormatError creates an error for undecodable image formats
func NewUnsupportedFormatError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedFormat,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewCorruptImageError creates an error for images whose header decodes but
// whose pixel data cannot be read
func NewCorruptImageError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeCorruptImage,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewRemoteProviderError creates an error for non-2xx provider responses.
// providerStatus is the status code returned by the upstream API, or zero
// when the call failed before a response was received.
func NewRemoteProviderError(providerStatus int, message string, cause error) *AppError {
	return &AppError{
		Type:           ErrorTypeRemoteProvider,
		Message:        message,
		StatusCode:     http.StatusBadGateway,
		ProviderStatus: providerStatus,
		Cause:          cause,
	}
}

// NewRemoteTimeoutError creates an error for provider calls that exceeded
// the configured request timeout
func NewRemoteTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRemoteTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewRemoteAuthError creates an error for missing or invalid provider credentials
func NewRemoteAuthError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRemoteAuth,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// NewProcessingError creates a new processing error
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProcessing,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
