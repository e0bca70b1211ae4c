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

package log

import (
	"context"
	"log/slog"
	"time"
)

// ItemResult describes the outcome of one processed item.
type ItemResult struct {
	// Success indicates whether the item produced a payload.
	Success bool

	// Captured is set when a failure was turned into an {"error": ...} item.
	Captured bool

	// Error is the error message if the item failed.
	Error string

	// DurationMs is the item duration in milliseconds.
	DurationMs int64
}

// LogItemResult logs the outcome of one item. Successes log at debug,
// captured failures at warn and aborting failures at error.
func LogItemResult(ctx context.Context, logger *slog.Logger, item int, res *ItemResult) {
	attrs := []any{
		ItemKey, item,
		"success", res.Success,
		DurationKey, res.DurationMs,
	}
	if res.Error != "" {
		attrs = append(attrs, "error", res.Error)
	}

	switch {
	case res.Success:
		logger.Log(ctx, slog.LevelDebug, "item completed", attrs...)
	case res.Captured:
		logger.Log(ctx, slog.LevelWarn, "item failed, continuing", attrs...)
	default:
		logger.Log(ctx, slog.LevelError, "item failed", attrs...)
	}
}

// ItemMiddleware wraps per-item processing with timing and result logging.
type ItemMiddleware struct {
	logger *slog.Logger
}

// NewItemMiddleware creates a new item logging middleware.
func NewItemMiddleware(logger *slog.Logger) *ItemMiddleware {
	return &ItemMiddleware{logger: logger}
}

// Handle runs fn for item and logs the result. captured reports whether a
// failure returned by fn was absorbed by continue-on-fail.
func (m *ItemMiddleware) Handle(ctx context.Context, item int, fn func() (captured bool, err error)) error {
	start := time.Now()

	captured, err := fn()

	res := &ItemResult{
		Success:    err == nil,
		Captured:   captured,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		res.Error = err.Error()
	}

	LogItemResult(ctx, m.logger, item, res)

	if captured {
		return nil
	}
	return err
}
