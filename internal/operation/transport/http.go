package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tombee/yourang/internal/log"
	"github.com/tombee/yourang/internal/tracing"
)

// DefaultTimeout is applied when HTTPTransportConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxErrorBodyInMessage bounds how much of an error response is echoed into
// TransportError.Message.
const maxErrorBodyInMessage = 500

// HTTPTransport implements the Transport interface for HTTP/HTTPS requests.
type HTTPTransport struct {
	config      *HTTPTransportConfig
	client      *http.Client
	rateLimiter RateLimiter
	logger      *slog.Logger
}

// HTTPTransportConfig configures the HTTP transport.
type HTTPTransportConfig struct {
	// BaseURL is the base URL for requests (required)
	BaseURL string

	// Timeout is the request timeout (default: 30s)
	Timeout time.Duration

	// Headers are default headers applied to all requests
	Headers map[string]string

	// Auth configures authentication
	Auth *AuthConfig

	// TLSInsecure disables TLS certificate validation (default: false)
	// WARNING: Only use for development/testing
	TLSInsecure bool

	// Logger receives trace-level request logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// AuthConfig configures HTTP authentication.
type AuthConfig struct {
	// Type is the authentication type. Only "bearer" is supported.
	Type string

	// Token is the bearer token
	Token string
}

// TransportType returns "http".
func (c *HTTPTransportConfig) TransportType() string {
	return "http"
}

// Validate checks if the configuration is valid.
func (c *HTTPTransportConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}

	if parsedURL.Scheme == "" {
		return fmt.Errorf("base_url must include scheme (http:// or https://)")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base_url must include host")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https, got %q", parsedURL.Scheme)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}

	if c.Auth != nil {
		if err := c.Auth.Validate(); err != nil {
			return fmt.Errorf("invalid auth configuration: %w", err)
		}
	}

	return nil
}

// Validate checks if the auth configuration is valid.
func (a *AuthConfig) Validate() error {
	switch a.Type {
	case "bearer":
		if a.Token == "" {
			return fmt.Errorf("token is required for bearer auth")
		}
	default:
		return fmt.Errorf("invalid auth type: %q (must be bearer)", a.Type)
	}
	return nil
}

// NewHTTPTransport creates a new HTTP transport with the given configuration.
func NewHTTPTransport(config *HTTPTransportConfig) (*HTTPTransport, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,

			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: 1 * time.Second,

			TLSClientConfig: &tls.Config{
				MinVersion:         tls.VersionTLS12,
				InsecureSkipVerify: config.TLSInsecure,
			},
		},
	}

	return &HTTPTransport{
		config: config,
		client: tracing.WrapHTTPClient(client),
		logger: log.WithComponent(logger, "transport"),
	}, nil
}

// Name returns "http".
func (t *HTTPTransport) Name() string {
	return "http"
}

// BaseURL returns the configured base URL without a trailing slash.
func (t *HTTPTransport) BaseURL() string {
	return strings.TrimRight(t.config.BaseURL, "/")
}

// SetRateLimiter configures rate limiting for this transport.
func (t *HTTPTransport) SetRateLimiter(limiter RateLimiter) {
	t.rateLimiter = limiter
}

// Execute sends a single HTTP request and returns the response.
// Responses with status >= 400 are returned as *TransportError.
func (t *HTTPTransport) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := t.validateRequest(req); err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("invalid request: %s", err.Error()),
			Cause:   err,
		}
	}

	if t.rateLimiter != nil {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return nil, &TransportError{
				Type:    ErrorTypeCancelled,
				Message: "rate limit wait cancelled",
				Cause:   err,
			}
		}
	}

	httpReq, err := t.buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("failed to build HTTP request: %s", err.Error()),
			Cause:   err,
		}
	}

	start := time.Now()
	log.Trace(ctx, t.logger, "http request",
		"method", req.Method,
		"url", req.URL,
		"body_bytes", len(req.Body),
	)

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, t.classifyHTTPError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeConnection,
			Message: fmt.Sprintf("failed to read response body: %s", err.Error()),
			Cause:   err,
		}
	}

	log.Trace(ctx, t.logger, "http response",
		"method", req.Method,
		"url", req.URL,
		"status", httpResp.StatusCode,
		log.DurationKey, time.Since(start).Milliseconds(),
	)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Metadata:   make(map[string]interface{}),
	}

	if requestID := httpResp.Header.Get("X-Request-ID"); requestID != "" {
		resp.Metadata[MetadataRequestID] = requestID
	}

	if httpResp.StatusCode >= 400 {
		if retryAfter := httpResp.Header.Get("Retry-After"); retryAfter != "" {
			resp.Metadata[MetadataRetryAfter] = retryAfter
		}
		return nil, classifyHTTPStatusError(httpResp.StatusCode, body, resp.Metadata)
	}

	return resp, nil
}

// validateRequest checks if the request is valid.
func (t *HTTPTransport) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("request is nil")
	}
	if req.Method == "" {
		return fmt.Errorf("method is required")
	}

	validMethods := map[string]bool{
		http.MethodGet: true, http.MethodPost: true, http.MethodPut: true,
		http.MethodDelete: true, http.MethodPatch: true,
	}
	if !validMethods[req.Method] {
		return fmt.Errorf("invalid HTTP method: %q", req.Method)
	}

	if req.URL == "" {
		return fmt.Errorf("URL is required")
	}
	if _, err := url.Parse(req.URL); err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	return nil
}

// buildHTTPRequest constructs an http.Request from a transport Request.
func (t *HTTPTransport) buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, value := range t.config.Headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if t.config.Auth != nil {
		if err := t.applyAuth(httpReq); err != nil {
			return nil, err
		}
	}

	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return httpReq, nil
}

// applyAuth applies authentication to the HTTP request.
func (t *HTTPTransport) applyAuth(req *http.Request) error {
	auth := t.config.Auth

	switch auth.Type {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	default:
		return fmt.Errorf("unsupported auth type: %q", auth.Type)
	}

	return nil
}

// classifyHTTPError classifies HTTP client errors into TransportError types.
func (t *HTTPTransport) classifyHTTPError(err error) *TransportError {
	if errors.Is(err, context.Canceled) {
		return &TransportError{
			Type:    ErrorTypeCancelled,
			Message: "request cancelled",
			Cause:   err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeoutError(err) {
		return &TransportError{
			Type:    ErrorTypeTimeout,
			Message: "request timeout",
			Cause:   err,
		}
	}

	return &TransportError{
		Type:    ErrorTypeConnection,
		Message: "connection error",
		Cause:   err,
	}
}

// classifyHTTPStatusError classifies HTTP status code errors into TransportError types.
func classifyHTTPStatusError(statusCode int, body []byte, metadata map[string]interface{}) *TransportError {
	var errorType ErrorType

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		errorType = ErrorTypeAuth
	case statusCode == http.StatusNotFound:
		errorType = ErrorTypeNotFound
	case statusCode == http.StatusTooManyRequests:
		errorType = ErrorTypeRateLimit
	case statusCode == http.StatusRequestTimeout:
		errorType = ErrorTypeTimeout
	case statusCode >= 500:
		errorType = ErrorTypeServer
	default:
		errorType = ErrorTypeClient
	}

	message := fmt.Sprintf("HTTP %d", statusCode)
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) < maxErrorBodyInMessage {
		message = fmt.Sprintf("HTTP %d: %s", statusCode, trimmed)
	}

	requestID, _ := metadata[MetadataRequestID].(string)

	return &TransportError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		RequestID:  requestID,
		Metadata:   metadata,
	}
}

// isTimeoutError checks if an error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
