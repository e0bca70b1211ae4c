package yourang

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownResource is returned when no handler is registered for a resource.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrUnknownOperation is returned when a handler does not support an operation.
	ErrUnknownOperation = errors.New("unknown operation")
)

// ValidationError reports parameters that are missing or invalid. It is
// raised before any request is sent.
type ValidationError struct {
	// Fields names every offending parameter.
	Fields []string

	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsUserVisible reports that validation errors are safe to print.
func (e *ValidationError) IsUserVisible() bool {
	return true
}

// UserMessage returns the message shown to users.
func (e *ValidationError) UserMessage() string {
	return e.Message
}

// Suggestion returns guidance for fixing the parameters.
func (e *ValidationError) Suggestion() string {
	return "Run 'yourang operations <resource>' to see the parameters of each operation"
}

// missingFieldsError reports all required fields that had no value.
func missingFieldsError(fields []string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")),
	}
}

// requiredError reports a single required parameter using its display label.
func requiredError(param, label string) *ValidationError {
	return &ValidationError{
		Fields:  []string{param},
		Message: fmt.Sprintf("%s is required", label),
	}
}

// invalidError reports a parameter whose value cannot be used.
func invalidError(param, format string, args ...any) *ValidationError {
	return &ValidationError{
		Fields:  []string{param},
		Message: fmt.Sprintf(format, args...),
	}
}

func unknownResourceError(resource string) error {
	return fmt.Errorf("%w: %q", ErrUnknownResource, resource)
}

func unknownOperationError(resource Resource, operation string) error {
	return fmt.Errorf("%w: %q for resource %q", ErrUnknownOperation, operation, resource)
}

// ItemError aborts a batch at the item that failed.
type ItemError struct {
	// Index is the zero-based position of the failed item.
	Index int

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ItemError) Unwrap() error {
	return e.Err
}
