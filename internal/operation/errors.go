package operation

import (
	"errors"
	"fmt"

	"github.com/tombee/yourang/internal/operation/transport"
)

// ErrorType classifies operation errors for appropriate handling.
type ErrorType string

const (
	// ErrorTypeAuth indicates authentication or authorization failure (401, 403)
	ErrorTypeAuth ErrorType = "auth_error"

	// ErrorTypeNotFound indicates resource not found (404)
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeValidation indicates the vendor rejected the request data (400, 422)
	ErrorTypeValidation ErrorType = "validation_error"

	// ErrorTypeRateLimit indicates rate limit exceeded (429)
	ErrorTypeRateLimit ErrorType = "rate_limited"

	// ErrorTypeServer indicates server-side error (5xx)
	ErrorTypeServer ErrorType = "server_error"

	// ErrorTypeTimeout indicates operation timeout
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeConnection indicates network/DNS error
	ErrorTypeConnection ErrorType = "connection_error"

	// ErrorTypeCancelled indicates the caller cancelled the request
	ErrorTypeCancelled ErrorType = "cancelled"

	// ErrorTypeDecode indicates the vendor returned a body that is not JSON
	ErrorTypeDecode ErrorType = "decode_error"

	// ErrorTypeTransform indicates an output transform failure
	ErrorTypeTransform ErrorType = "transform_error"
)

// Error represents a failed call to the vendor API.
type Error struct {
	// Type classifies the error
	Type ErrorType

	// Message is the human-readable error description
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// SuggestText provides guidance on how to resolve the error.
	SuggestText string

	// RequestID from the external service
	RequestID string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message

	if e.StatusCode > 0 && e.Type != "" {
		msg = fmt.Sprintf("%s (type: %s)", msg, e.Type)
	}

	if e.RequestID != "" {
		msg = fmt.Sprintf("%s (request-id: %s)", msg, e.RequestID)
	}

	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUserVisible reports that operation errors are safe to print.
func (e *Error) IsUserVisible() bool {
	return true
}

// UserMessage returns the message without type or request annotations.
func (e *Error) UserMessage() string {
	return e.Message
}

// Suggestion returns actionable guidance for resolving the error.
func (e *Error) Suggestion() string {
	return e.SuggestText
}

// FromTransportError converts a *transport.TransportError anywhere in err's
// chain into an *Error with a suggestion. Other errors are returned unchanged.
func FromTransportError(err error) error {
	if err == nil {
		return nil
	}

	var te *transport.TransportError
	if !errors.As(err, &te) {
		return err
	}

	opErr := &Error{
		Message:    te.Message,
		StatusCode: te.StatusCode,
		RequestID:  te.RequestID,
		Cause:      err,
	}

	switch te.Type {
	case transport.ErrorTypeAuth:
		opErr.Type = ErrorTypeAuth
		opErr.SuggestText = "Check the API key with 'yourang credentials test'"
	case transport.ErrorTypeNotFound:
		opErr.Type = ErrorTypeNotFound
		opErr.SuggestText = "Verify the identifier exists in your Yourang account"
	case transport.ErrorTypeRateLimit:
		opErr.Type = ErrorTypeRateLimit
		opErr.SuggestText = "Wait for the rate limit window or lower rate_limit.requests_per_second"
		if retryAfter, ok := te.Metadata[transport.MetadataRetryAfter].(string); ok {
			opErr.SuggestText = fmt.Sprintf("Retry after %s seconds", retryAfter)
		}
	case transport.ErrorTypeServer:
		opErr.Type = ErrorTypeServer
		opErr.SuggestText = "The Yourang API failed; try again later"
	case transport.ErrorTypeTimeout:
		opErr.Type = ErrorTypeTimeout
		opErr.SuggestText = "Increase timeout or check service responsiveness"
	case transport.ErrorTypeConnection:
		opErr.Type = ErrorTypeConnection
		opErr.SuggestText = "Check network connectivity and the configured base_url"
	case transport.ErrorTypeCancelled:
		opErr.Type = ErrorTypeCancelled
	default:
		opErr.Type = ErrorTypeValidation
		opErr.SuggestText = "Check the parameter values against 'yourang operations'"
	}

	return opErr
}

// NewDecodeError creates an error for responses that are not valid JSON.
func NewDecodeError(statusCode int, cause error) *Error {
	return &Error{
		Type:        ErrorTypeDecode,
		Message:     "response is not valid JSON",
		StatusCode:  statusCode,
		Cause:       cause,
		SuggestText: "Check that base_url points at the Yourang API",
	}
}

// NewTransformError creates an error for output transform failures.
func NewTransformError(expression string, cause error) *Error {
	return &Error{
		Type:        ErrorTypeTransform,
		Message:     fmt.Sprintf("output transform failed: %s", expression),
		Cause:       cause,
		SuggestText: "Check jq expression syntax and ensure it matches the response structure",
	}
}
