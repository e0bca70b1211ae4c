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
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("expected default format 'json', got %q", cfg.Format)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected default output to be os.Stderr")
	}
	if cfg.AddSource {
		t.Errorf("expected default AddSource to be false")
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		envVars    map[string]string
		wantLevel  string
		wantFormat Format
		wantSource bool
	}{
		{
			name:       "defaults when no env vars",
			envVars:    map[string]string{},
			wantLevel:  "info",
			wantFormat: FormatJSON,
		},
		{
			name:       "LOG_LEVEL is lowercased",
			envVars:    map[string]string{"LOG_LEVEL": "DEBUG"},
			wantLevel:  "debug",
			wantFormat: FormatJSON,
		},
		{
			name:       "YOURANG_LOG_LEVEL wins over LOG_LEVEL",
			envVars:    map[string]string{"YOURANG_LOG_LEVEL": "trace", "LOG_LEVEL": "error"},
			wantLevel:  "trace",
			wantFormat: FormatJSON,
		},
		{
			name:       "YOURANG_DEBUG wins over everything",
			envVars:    map[string]string{"YOURANG_DEBUG": "1", "YOURANG_LOG_LEVEL": "error"},
			wantLevel:  "debug",
			wantFormat: FormatJSON,
			wantSource: true,
		},
		{
			name:       "LOG_FORMAT and LOG_SOURCE",
			envVars:    map[string]string{"LOG_FORMAT": "TEXT", "LOG_SOURCE": "1"},
			wantLevel:  "info",
			wantFormat: FormatText,
			wantSource: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"YOURANG_DEBUG", "YOURANG_LOG_LEVEL", "LOG_LEVEL", "LOG_FORMAT", "LOG_SOURCE"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := FromEnv()

			if cfg.Level != tt.wantLevel {
				t.Errorf("expected level %q, got %q", tt.wantLevel, cfg.Level)
			}
			if cfg.Format != tt.wantFormat {
				t.Errorf("expected format %q, got %q", tt.wantFormat, cfg.Format)
			}
			if cfg.AddSource != tt.wantSource {
				t.Errorf("expected AddSource %v, got %v", tt.wantSource, cfg.AddSource)
			}
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "debug", Format: FormatJSON, Output: &buf})

	logger.Debug("hello", "key", "value")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("expected key 'value', got %v", entry["key"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatText, Output: &buf})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "key=value") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if New(nil) == nil {
		t.Fatal("expected a logger for nil config")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTrace_LevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "trace", Format: FormatJSON, Output: &buf})

	Trace(context.Background(), logger, "http request", "method", "GET")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", entry["level"])
	}
}

func TestTrace_FilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Config{Level: "info", Format: FormatJSON, Output: &buf})

	Trace(context.Background(), logger, "http request")

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}

func TestWithRunContext(t *testing.T) {
	var buf bytes.Buffer
	logger := WithRunContext(New(&Config{Level: "info", Output: &buf}), "run-1", "contact", "getAll")

	logger.Info("started")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry[RunIDKey] != "run-1" || entry[ResourceKey] != "contact" || entry[OperationKey] != "getAll" {
		t.Errorf("missing run context fields: %v", entry)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(New(&Config{Level: "info", Output: &buf}), "transport")

	logger.Info("x")

	if !strings.Contains(buf.String(), `"component":"transport"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestErrorAttr(t *testing.T) {
	attr := Error(errors.New("boom"))
	if attr.Key != "error" {
		t.Errorf("expected key 'error', got %q", attr.Key)
	}
}

func TestSanitizeAPIKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "[REDACTED]"},
		{"abcd", "[REDACTED]"},
		{"yr_live_123456", "...3456"},
	}
	for _, tt := range tests {
		if got := SanitizeAPIKey(tt.in); got != tt.want {
			t.Errorf("SanitizeAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected discard logger to be disabled at error level")
	}
}
