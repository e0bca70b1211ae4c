package yourang

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tombee/yourang/internal/log"
	"github.com/tombee/yourang/internal/operation"
	"github.com/tombee/yourang/internal/tracing"
)

// Node runs one resource operation over a batch of items. It holds no
// per-run state and is safe for concurrent use.
type Node struct {
	requester      Requester
	logger         *slog.Logger
	tracer         trace.Tracer
	continueOnFail bool
}

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Node) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithTracer sets the tracer used for item spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(n *Node) {
		if tracer != nil {
			n.tracer = tracer
		}
	}
}

// WithContinueOnFail turns item failures into {"error": message} output
// items instead of aborting the run.
func WithContinueOnFail(enabled bool) Option {
	return func(n *Node) {
		n.continueOnFail = enabled
	}
}

// NewNode creates a Node that sends requests through r.
func NewNode(r Requester, opts ...Option) *Node {
	n := &Node{
		requester: r,
		logger:    log.Discard(),
		tracer:    noop.NewTracerProvider().Tracer(tracing.InstrumentationName),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Run executes the batch. The resource and operation are read from the
// first item and govern every item. Unknown resources and operations are
// reported before any request is sent, whatever continue-on-fail says.
//
// The output has one entry per input item, in input order. A failing item
// aborts the run with an *ItemError unless continue-on-fail is set.
// Context cancellation always aborts.
func (n *Node) Run(ctx context.Context, items Batch) ([]any, error) {
	if items.Len() == 0 {
		return []any{}, nil
	}

	resource := paramString(items, "resource", 0)
	operationName := paramString(items, "operation", 0)
	h, err := Resolve(resource, operationName)
	if err != nil {
		return nil, err
	}

	ctx, runID := tracing.EnsureRunID(ctx)
	logger := log.WithRunContext(n.logger, runID.String(), resource, operationName)
	mw := log.NewItemMiddleware(logger)

	logger.Debug("run started", "items", items.Len())

	out := make([]any, 0, items.Len())
	for i := 0; i < items.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}

		var result any
		err := mw.Handle(ctx, i, func() (bool, error) {
			var runErr error
			result, runErr = n.runItem(ctx, h, resource, operationName, items, i)
			if runErr == nil {
				return false, nil
			}
			captured := n.continueOnFail && ctx.Err() == nil
			if captured {
				result = map[string]any{"error": runErr.Error()}
			}
			return captured, runErr
		})
		if err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}
		out = append(out, result)
	}

	logger.Debug("run completed", "items", len(out))
	return out, nil
}

// runItem performs one item inside its span and records its metrics.
func (n *Node) runItem(ctx context.Context, h Handler, resource, operationName string, p Parameters, i int) (result any, err error) {
	ctx, span := tracing.StartItemSpan(ctx, n.tracer, resource, operationName, i)
	start := time.Now()
	defer func() {
		operation.RecordRequest(resource, operationName, err, time.Since(start))
		tracing.EndSpan(span, err, err != nil && n.continueOnFail)
	}()

	return Execute(ctx, h, n.requester, operationName, p, i)
}

// Execute runs a single resource operation for the item at itemIndex,
// without the batch loop.
func (n *Node) Execute(ctx context.Context, resource, operationName string, p Parameters, itemIndex int) (any, error) {
	h, err := Resolve(resource, operationName)
	if err != nil {
		return nil, err
	}
	ctx, _ = tracing.EnsureRunID(ctx)
	return n.runItem(ctx, h, resource, operationName, p, itemIndex)
}
