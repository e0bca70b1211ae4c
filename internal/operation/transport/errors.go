package transport

import (
	"fmt"
)

// ErrorType classifies transport errors.
type ErrorType string

const (
	// ErrorTypeConnection indicates network or DNS errors
	ErrorTypeConnection ErrorType = "connection"

	// ErrorTypeTimeout indicates request timeout or deadline exceeded
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeAuth indicates authentication failure (401, 403)
	ErrorTypeAuth ErrorType = "auth"

	// ErrorTypeNotFound indicates the addressed resource does not exist (404)
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeRateLimit indicates rate limiting (429 Too Many Requests)
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeServer indicates server errors (5xx)
	ErrorTypeServer ErrorType = "server"

	// ErrorTypeClient indicates other client errors (4xx)
	ErrorTypeClient ErrorType = "client"

	// ErrorTypeInvalidReq indicates request validation error (invalid method, URL, etc.)
	ErrorTypeInvalidReq ErrorType = "invalid_request"

	// ErrorTypeCancelled indicates context was cancelled
	ErrorTypeCancelled ErrorType = "cancelled"
)

// TransportError represents a structured error from transport execution.
type TransportError struct {
	// Type classifies the error
	Type ErrorType

	// StatusCode is the HTTP status code if applicable
	// Zero for non-HTTP errors (connection, timeout, etc.)
	StatusCode int

	// Message is a user-facing error message with credentials redacted
	Message string

	// RequestID is the request ID reported by the service, if any
	RequestID string

	// Cause is the underlying error
	// May contain sensitive data - use Message for user-facing errors
	Cause error

	// Metadata contains service-specific debugging details
	Metadata map[string]interface{}
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *TransportError) Unwrap() error {
	return e.Cause
}
