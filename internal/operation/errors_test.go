package operation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/yourang/internal/operation/transport"
)

func TestFromTransportError(t *testing.T) {
	tests := []struct {
		name      string
		te        *transport.TransportError
		wantType  ErrorType
		wantHint  string
		wantCode  int
		wantReqID string
	}{
		{
			name:     "auth",
			te:       &transport.TransportError{Type: transport.ErrorTypeAuth, StatusCode: 401, Message: "HTTP 401"},
			wantType: ErrorTypeAuth,
			wantHint: "credentials test",
			wantCode: 401,
		},
		{
			name:      "not found keeps request id",
			te:        &transport.TransportError{Type: transport.ErrorTypeNotFound, StatusCode: 404, Message: "HTTP 404", RequestID: "r-9"},
			wantType:  ErrorTypeNotFound,
			wantHint:  "identifier",
			wantCode:  404,
			wantReqID: "r-9",
		},
		{
			name: "rate limit with retry-after",
			te: &transport.TransportError{
				Type: transport.ErrorTypeRateLimit, StatusCode: 429, Message: "HTTP 429",
				Metadata: map[string]interface{}{transport.MetadataRetryAfter: "30"},
			},
			wantType: ErrorTypeRateLimit,
			wantHint: "Retry after 30 seconds",
			wantCode: 429,
		},
		{
			name:     "client error maps to validation",
			te:       &transport.TransportError{Type: transport.ErrorTypeClient, StatusCode: 422, Message: "HTTP 422"},
			wantType: ErrorTypeValidation,
			wantHint: "yourang operations",
			wantCode: 422,
		},
		{
			name:     "server",
			te:       &transport.TransportError{Type: transport.ErrorTypeServer, StatusCode: 503, Message: "HTTP 503"},
			wantType: ErrorTypeServer,
			wantHint: "try again",
			wantCode: 503,
		},
		{
			name:     "connection",
			te:       &transport.TransportError{Type: transport.ErrorTypeConnection, Message: "connection error"},
			wantType: ErrorTypeConnection,
			wantHint: "base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromTransportError(fmt.Errorf("wrapped: %w", tt.te))

			var opErr *Error
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, tt.wantType, opErr.Type)
			assert.Equal(t, tt.wantCode, opErr.StatusCode)
			assert.Equal(t, tt.wantReqID, opErr.RequestID)
			assert.Contains(t, opErr.Suggestion(), tt.wantHint)
			assert.True(t, opErr.IsUserVisible())
			assert.Equal(t, tt.te.Message, opErr.UserMessage())

			var te *transport.TransportError
			assert.True(t, errors.As(err, &te), "transport error stays in the chain")
		})
	}
}

func TestFromTransportError_PassThrough(t *testing.T) {
	assert.NoError(t, FromTransportError(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, FromTransportError(plain))
}

func TestError_Error(t *testing.T) {
	err := &Error{Type: ErrorTypeNotFound, StatusCode: 404, Message: "HTTP 404", RequestID: "abc"}
	assert.Equal(t, "HTTP 404 (type: not_found) (request-id: abc)", err.Error())

	err = &Error{Type: ErrorTypeTimeout, Message: "request timeout"}
	assert.Equal(t, "request timeout", err.Error())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, StatusOK, StatusLabel(nil))
	assert.Equal(t, "not_found", StatusLabel(&Error{Type: ErrorTypeNotFound}))
	assert.Equal(t, StatusError, StatusLabel(errors.New("x")))
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("contact", "get", StatusOK))

	RecordRequest("contact", "get", nil, 25*time.Millisecond)
	RecordRequest("contact", "get", nil, 25*time.Millisecond)

	after := testutil.ToFloat64(requestsTotal.WithLabelValues("contact", "get", StatusOK))
	assert.Equal(t, before+2, after)
}
