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

package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	_, span := p.Tracer().Start(context.Background(), "noop")
	if span.SpanContext().IsValid() {
		t.Error("expected a no-op span")
	}
	span.End()

	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewProvider_ExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewProvider(Config{Enabled: true, Writer: &buf, ServiceVersion: "test"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}

	_, span := p.Tracer().Start(context.Background(), "contact.get")
	span.End()

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("contact.get")) {
		t.Errorf("expected exported span in output, got %q", buf.String())
	}
}

func TestItemSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	p, err := NewProvider(Config{Enabled: true, Writer: &bytes.Buffer{}}, sdktrace.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	id := NewRunID()
	ctx := ToContext(context.Background(), id)

	_, span := StartItemSpan(ctx, p.Tracer(), "contact", "get", 2)
	EndSpan(span, errors.New("boom"), true)

	_, span = StartItemSpan(ctx, p.Tracer(), "contact", "get", 3)
	EndSpan(span, nil, false)

	ended := recorder.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}

	failed := ended[0]
	if failed.Name() != "contact.get" {
		t.Errorf("span name = %q", failed.Name())
	}
	if failed.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", failed.Status().Code)
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range failed.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrRunID].AsString() != id.String() {
		t.Errorf("run id attribute = %q", attrs[AttrRunID].AsString())
	}
	if attrs[AttrItem].AsInt64() != 2 {
		t.Errorf("item attribute = %d", attrs[AttrItem].AsInt64())
	}
	if !attrs[AttrCaptured].AsBool() {
		t.Error("expected captured attribute")
	}

	if ended[1].Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", ended[1].Status().Code)
	}
}
