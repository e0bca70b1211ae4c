// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tracing provides run correlation ids and OpenTelemetry spans for
// node runs.
package tracing

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// RunID identifies one node run across log lines, spans and outbound
// requests. It uses RFC 4122 UUID format.
type RunID string

type runIDKeyType struct{}

var runIDKey = runIDKeyType{}

// HeaderCorrelationID carries the run id on outbound requests.
const HeaderCorrelationID = "X-Correlation-ID"

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// NewRunID generates a new run id.
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// String returns the string representation of the run id.
func (r RunID) String() string {
	return string(r)
}

// IsValid reports whether the run id is a UUID.
func (r RunID) IsValid() bool {
	return uuidRegex.MatchString(string(r))
}

// ToContext stores the run id in ctx.
func ToContext(ctx context.Context, id RunID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// FromContext returns the run id stored in ctx, or "" when there is none.
func FromContext(ctx context.Context) RunID {
	if id, ok := ctx.Value(runIDKey).(RunID); ok {
		return id
	}
	return ""
}

// EnsureRunID returns ctx unchanged when it already carries a valid run id,
// and otherwise a child context with a new one.
func EnsureRunID(ctx context.Context) (context.Context, RunID) {
	if id := FromContext(ctx); id.IsValid() {
		return ctx, id
	}
	id := NewRunID()
	return ToContext(ctx, id), id
}

// InjectIntoRequest sets the correlation header from the run id in the
// request's context.
func InjectIntoRequest(req *http.Request) {
	if id := FromContext(req.Context()); id != "" {
		req.Header.Set(HeaderCorrelationID, id.String())
	}
}

// CorrelationRoundTripper injects the run id into outbound requests.
type CorrelationRoundTripper struct {
	Transport http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *CorrelationRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if id := FromContext(req.Context()); id != "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		InjectIntoRequest(req)
	}

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return transport.RoundTrip(req)
}

// WrapHTTPClient returns a copy of client that injects run ids.
func WrapHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{}
	}

	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &http.Client{
		Transport:     &CorrelationRoundTripper{Transport: transport},
		CheckRedirect: client.CheckRedirect,
		Jar:           client.Jar,
		Timeout:       client.Timeout,
	}
}
