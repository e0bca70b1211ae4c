// Package transport provides the protocol-level HTTP layer used by the Yourang client.
//
// The transport layer separates protocol concerns (authentication headers, TLS, timeouts,
// client-side rate limiting, status classification) from request shaping, which lives in
// the integration handlers. A transport never retries: a failed call is returned to the
// caller as a *TransportError.
package transport

import (
	"context"
)

// Transport executes requests with protocol-specific handling.
type Transport interface {
	// Execute sends a request and returns a response.
	// The context controls cancellation and deadlines.
	// Returns *TransportError on failure.
	Execute(ctx context.Context, req *Request) (*Response, error)

	// Name returns the transport identifier (e.g., "http").
	Name() string

	// SetRateLimiter configures rate limiting for this transport.
	SetRateLimiter(limiter RateLimiter)
}

// Request represents a transport-agnostic request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE, PATCH)
	// Required, must be non-empty
	Method string

	// URL is the full request URL including the encoded query string
	// Required, must be valid per RFC 3986
	URL string

	// Headers are request headers
	// Optional, may be nil or empty map
	Headers map[string]string

	// Body is the request body
	// Optional, may be nil or empty slice
	Body []byte
}

// Response represents a transport-agnostic response.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Headers contains response headers
	Headers map[string][]string

	// Body is the response body
	Body []byte

	// Metadata contains transport-specific data (e.g., request id)
	Metadata map[string]interface{}
}

// Standard metadata keys used across transports
const (
	// MetadataRequestID is the service request ID
	MetadataRequestID = "request_id"

	// MetadataRetryAfter is the Retry-After header of a rate limited response
	MetadataRetryAfter = "retry_after"
)

// RateLimiter provides rate limiting for transport requests.
// *rate.Limiter from golang.org/x/time/rate satisfies this interface.
type RateLimiter interface {
	// Wait blocks until a request is allowed under the rate limit.
	// Returns an error if the context is cancelled before the request can proceed.
	Wait(ctx context.Context) error
}
