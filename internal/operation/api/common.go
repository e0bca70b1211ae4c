// Package api provides the JSON request client and the metadata types that
// describe Yourang operations.
package api

import (
	"github.com/tombee/yourang/internal/operation/transport"
)

// ClientConfig holds configuration for the API client.
type ClientConfig struct {
	// Transport is the HTTP transport for making requests
	Transport transport.Transport

	// BaseURL is the API base URL, e.g. https://api.yourang.ai/v1
	BaseURL string
}

// OperationInfo provides metadata about an operation.
type OperationInfo struct {
	// Name is the operation identifier (e.g., "getAll")
	Name string `json:"name"`

	// Description is a human-readable description
	Description string `json:"description"`

	// Category groups related operations (e.g., "contacts", "history")
	Category string `json:"category,omitempty"`

	// Tags classify operations ("read", "write", "paginated", "destructive")
	Tags []string `json:"tags,omitempty"`
}

// OperationSchema describes an operation's inputs.
type OperationSchema struct {
	// Description is a human-readable description
	Description string `json:"description"`

	// Parameters describes the operation inputs
	Parameters []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes an operation parameter.
type ParameterInfo struct {
	// Name is the parameter identifier
	Name string `json:"name"`

	// Type is the parameter type (string, integer, boolean, array, object)
	Type string `json:"type"`

	// Description is a human-readable description
	Description string `json:"description,omitempty"`

	// Required indicates if the parameter is required
	Required bool `json:"required,omitempty"`

	// Default is the default value (nil if no default)
	Default interface{} `json:"default,omitempty"`

	// Enum lists the accepted values, if restricted
	Enum []string `json:"enum,omitempty"`
}

// Tag values used in OperationInfo.Tags.
const (
	TagRead        = "read"
	TagWrite       = "write"
	TagPaginated   = "paginated"
	TagDestructive = "destructive"
)

// TypedProvider exposes operation metadata.
type TypedProvider interface {
	// Operations returns the list of available operations with metadata.
	Operations() []OperationInfo

	// OperationSchema returns the operation description and parameter information.
	// Returns nil if the operation doesn't exist.
	OperationSchema(operation string) *OperationSchema
}
