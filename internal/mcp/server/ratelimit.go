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

package server

import (
	"sync"
	"time"
)

// RateLimiter implements token bucket rate limiting for MCP tool calls
type RateLimiter struct {
	callBucket *tokenBucket
}

// tokenBucket implements a simple token bucket algorithm
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	now        func() time.Time
}

// NewRateLimiter creates a rate limiter allowing callsPerMinute tool calls.
func NewRateLimiter(callsPerMinute int) *RateLimiter {
	return &RateLimiter{
		callBucket: newTokenBucket(float64(callsPerMinute), time.Now),
	}
}

func newTokenBucket(perMinute float64, now func() time.Time) *tokenBucket {
	return &tokenBucket{
		tokens:     perMinute,
		maxTokens:  perMinute,
		refillRate: perMinute / 60.0,
		lastRefill: now(),
		now:        now,
	}
}

// AllowCall checks if any tool call is allowed
func (rl *RateLimiter) AllowCall() bool {
	return rl.callBucket.take(1)
}

// take attempts to take n tokens from the bucket
func (tb *tokenBucket) take(n float64) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens = min(tb.maxTokens, tb.tokens+elapsed*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= n {
		tb.tokens -= n
		return true
	}

	return false
}
