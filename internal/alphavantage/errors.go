package alphavantage

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error that occurred during an API call
type ErrorType string

const (
	// ErrorTypeNetwork indicates a network-level error (connection refused, DNS, timeout, etc.)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeClient indicates a client error (HTTP 4xx)
	ErrorTypeClient ErrorType = "client"
	// ErrorTypeParse indicates the response was received but could not be decoded
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeValidation indicates the response decoded but lacked expected data
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeThrottled indicates the provider answered with a rate-limit
	// notice in place of data. This is not a transport failure: the caller
	// should stop issuing further requests for this run.
	ErrorTypeThrottled ErrorType = "throttled"
)

// APIError represents a structured error from an Alpha Vantage call
type APIError struct {
	Type       ErrorType
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewNetworkError creates a network error
func NewNetworkError(cause error) *APIError {
	return &APIError{
		Type:    ErrorTypeNetwork,
		Message: "network request failed",
		Cause:   cause,
	}
}

// NewParseError creates a parse error
func NewParseError(message string, cause error) *APIError {
	return &APIError{
		Type:    ErrorTypeParse,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewThrottledError creates an error carrying the provider's rate-limit notice
func NewThrottledError(notice string) *APIError {
	return &APIError{
		Type:    ErrorTypeThrottled,
		Message: notice,
	}
}

// ClassifyHTTPError classifies a non-2xx HTTP status into an appropriate APIError
func ClassifyHTTPError(statusCode int) *APIError {
	switch {
	case statusCode >= 500:
		return &APIError{
			Type:       ErrorTypeServer,
			StatusCode: statusCode,
			Message:    "server returned an error",
		}
	case statusCode >= 400:
		return &APIError{
			Type:       ErrorTypeClient,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("client error: HTTP %d", statusCode),
		}
	default:
		return &APIError{
			Type:       ErrorTypeClient,
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		}
	}
}

// IsThrottled reports whether err is a provider rate-limit notice.
func IsThrottled(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeThrottled
}
