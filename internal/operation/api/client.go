package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tombee/yourang/internal/operation"
	"github.com/tombee/yourang/internal/operation/transport"
)

// Request is one outbound call to the Yourang API. It is built fresh for
// every invocation and never reused.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE)
	Method string

	// Path is appended to the base URL. Identifiers must already be escaped.
	Path string

	// Query holds query parameters. Values are formatted with FormatQueryValue.
	Query map[string]any

	// Body is marshalled as JSON when non-nil.
	Body any
}

// Client issues JSON requests against the Yourang API through a transport.
type Client struct {
	transport transport.Transport
	baseURL   string
}

// NewClient creates a new API client.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil || config.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	return &Client{
		transport: config.Transport,
		baseURL:   strings.TrimRight(config.BaseURL, "/"),
	}, nil
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the decoded JSON response. An empty response
// body decodes to an empty object. Vendor failures are returned as
// *operation.Error.
func (c *Client) Do(ctx context.Context, req *Request) (any, error) {
	var body []byte
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = encoded
	}

	resp, err := c.transport.Execute(ctx, &transport.Request{
		Method: req.Method,
		URL:    c.BuildURL(req.Path, req.Query),
		Headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
		Body: body,
	})
	if err != nil {
		return nil, operation.FromTransportError(err)
	}

	return decodeResponse(resp)
}

// BuildURL joins the base URL, path and encoded query string.
func (c *Client) BuildURL(path string, query map[string]any) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	full := c.baseURL + path

	if qs := EncodeQuery(query); qs != "" {
		full += "?" + qs
	}
	return full
}

// EncodeQuery encodes query values in key order. Nil values are skipped.
func EncodeQuery(query map[string]any) string {
	values := url.Values{}
	for key, value := range query {
		if value == nil {
			continue
		}
		values.Set(key, FormatQueryValue(value))
	}
	return values.Encode()
}

// FormatQueryValue renders a loosely typed parameter value as a query
// string value. Integral floats render without a fractional part.
func FormatQueryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func decodeResponse(resp *transport.Response) (any, error) {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return map[string]any{}, nil
	}

	var out any
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, operation.NewDecodeError(resp.StatusCode, err)
	}
	return out, nil
}
