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
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName is the tracer name used for node spans.
const InstrumentationName = "github.com/tombee/yourang"

// Span attribute keys.
const (
	AttrRunID     = attribute.Key("yourang.run_id")
	AttrResource  = attribute.Key("yourang.resource")
	AttrOperation = attribute.Key("yourang.operation")
	AttrItem      = attribute.Key("yourang.item")
	AttrCaptured  = attribute.Key("yourang.error_captured")
)

// Config controls span export.
type Config struct {
	// Enabled turns on span export. A disabled provider hands out no-op tracers.
	Enabled bool `yaml:"enabled"`

	// PrettyPrint indents exported spans.
	PrettyPrint bool `yaml:"pretty_print"`

	// ServiceName is reported as service.name.
	ServiceName string `yaml:"service_name,omitempty"`

	// ServiceVersion is reported as service.version.
	ServiceVersion string `yaml:"-"`

	// Writer receives exported spans (default: os.Stderr).
	Writer io.Writer `yaml:"-"`
}

// Provider owns the tracer provider for one process.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider creates a Provider from cfg. When tracing is disabled the
// returned provider is a no-op and Shutdown does nothing.
func NewProvider(cfg Config, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stderr
	}
	exporterOpts := []stdouttrace.Option{stdouttrace.WithWriter(writer)}
	if cfg.PrettyPrint {
		exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create console exporter: %w", err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "yourang"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(name),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	allOpts := append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSyncer(exporter),
	}, opts...)

	return &Provider{tp: sdktrace.NewTracerProvider(allOpts...)}, nil
}

// Tracer returns the node tracer.
func (p *Provider) Tracer() trace.Tracer {
	if p == nil || p.tp == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	return p.tp.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans and releases the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// StartItemSpan starts the span covering one item of a run.
func StartItemSpan(ctx context.Context, tracer trace.Tracer, resource, operation string, item int) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		AttrResource.String(resource),
		AttrOperation.String(operation),
		AttrItem.Int(item),
	}
	if id := FromContext(ctx); id != "" {
		attrs = append(attrs, AttrRunID.String(id.String()))
	}
	return tracer.Start(ctx, resource+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err on span, if any, and ends it. captured marks errors
// that were turned into item output instead of failing the run.
func EndSpan(span trace.Span, err error, captured bool) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if captured {
			span.SetAttributes(AttrCaptured.Bool(true))
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
