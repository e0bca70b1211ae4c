// Package jq applies jq expressions to node output for "yourang run --jq".
package jq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itchyny/gojq"
)

const (
	// DefaultTimeout is the default execution time for jq expressions (1 second)
	DefaultTimeout = 1 * time.Second

	// DefaultMaxInputSize is the default maximum input size for transforms (10MB)
	DefaultMaxInputSize = 10 * 1024 * 1024
)

// Query is a compiled jq expression with timeout and size limits.
type Query struct {
	expression   string
	code         *gojq.Code
	timeout      time.Duration
	maxInputSize int
}

// Compile parses and compiles expression. Zero limits take the defaults.
func Compile(expression string, timeout time.Duration, maxInputSize int) (*Query, error) {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if maxInputSize == 0 {
		maxInputSize = DefaultMaxInputSize
	}

	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("jq compilation failed: %w", err)
	}

	return &Query{
		expression:   expression,
		code:         code,
		timeout:      timeout,
		maxInputSize: maxInputSize,
	}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expression
}

// Run evaluates the query against data. A single result is returned as is,
// several results as a slice, and no result as nil.
func (q *Query) Run(ctx context.Context, data any) (any, error) {
	input, err := q.normalize(data)
	if err != nil {
		return nil, err
	}

	execCtx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	iter := q.code.RunWithContext(execCtx, input)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if execCtx.Err() != nil && ctx.Err() == nil {
				return nil, fmt.Errorf("execution timeout after %v", q.timeout)
			}
			return nil, err
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// normalize converts data to the plain JSON types gojq accepts and checks
// the encoded size.
func (q *Query) normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}
	if len(raw) > q.maxInputSize {
		return nil, fmt.Errorf("data size (%d bytes) exceeds maximum (%d bytes)", len(raw), q.maxInputSize)
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return out, nil
}

// Execute compiles expression and runs it once. An empty expression
// returns data unchanged.
func Execute(ctx context.Context, expression string, data any) (any, error) {
	if expression == "" {
		return data, nil
	}
	q, err := Compile(expression, 0, 0)
	if err != nil {
		return nil, err
	}
	return q.Run(ctx, data)
}
