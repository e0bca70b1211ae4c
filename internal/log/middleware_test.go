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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]interface{}
		if err := dec.Decode(&entry); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		out = append(out, entry)
	}
	return out
}

func TestItemMiddleware_Success(t *testing.T) {
	var buf bytes.Buffer
	m := NewItemMiddleware(New(&Config{Level: "debug", Output: &buf}))

	err := m.Handle(context.Background(), 2, func() (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(lines))
	}
	if lines[0]["level"] != "DEBUG" || lines[0]["msg"] != "item completed" {
		t.Errorf("unexpected entry: %v", lines[0])
	}
	if lines[0][ItemKey] != float64(2) {
		t.Errorf("expected item 2, got %v", lines[0][ItemKey])
	}
}

func TestItemMiddleware_Captured(t *testing.T) {
	var buf bytes.Buffer
	m := NewItemMiddleware(New(&Config{Level: "debug", Output: &buf}))

	err := m.Handle(context.Background(), 0, func() (bool, error) { return true, errors.New("boom") })
	if err != nil {
		t.Fatalf("captured failures must not propagate, got %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["level"] != "WARN" || lines[0]["error"] != "boom" {
		t.Errorf("unexpected entries: %v", lines)
	}
}

func TestItemMiddleware_Failure(t *testing.T) {
	var buf bytes.Buffer
	m := NewItemMiddleware(New(&Config{Level: "debug", Output: &buf}))

	boom := errors.New("boom")
	err := m.Handle(context.Background(), 1, func() (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["level"] != "ERROR" {
		t.Errorf("unexpected entries: %v", lines)
	}
}
