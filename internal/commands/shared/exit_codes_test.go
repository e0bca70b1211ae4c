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

package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/operation"
	pkgerrors "github.com/tombee/yourang/pkg/errors"
)

// validationErr returns a real validation failure from the node.
func validationErr(t *testing.T) error {
	t.Helper()
	_, err := yourang.NewNode(nil).Execute(context.Background(), "contact", "get", yourang.Items{{}}, 0)
	require.ErrorIs(t, err, yourang.ErrValidation)
	return err
}

func TestExitCode(t *testing.T) {
	apiErr := &operation.Error{Type: operation.ErrorTypeAuth, Message: "HTTP 401", StatusCode: 401, SuggestText: "Check your API key"}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "validation", err: validationErr(t), want: ExitInvalidInput},
		{name: "item wrapped validation", err: &yourang.ItemError{Index: 2, Err: validationErr(t)}, want: ExitInvalidInput},
		{name: "unknown resource", err: fmt.Errorf("dispatch: %w", yourang.ErrUnknownResource), want: ExitInvalidInput},
		{name: "api error", err: &yourang.ItemError{Err: apiErr}, want: ExitAPIError},
		{name: "cancelled", err: &operation.Error{Type: operation.ErrorTypeCancelled}, want: ExitFailed},
		{name: "config", err: &pkgerrors.ConfigError{Key: "api_key", Reason: "missing"}, want: ExitInvalidConfig},
		{name: "explicit exit error", err: NewInvalidInputError("bad items file", errors.New("eof")), want: ExitInvalidInput},
		{name: "other", err: errors.New("boom"), want: ExitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "not_found", ErrorCode(&operation.Error{Type: operation.ErrorTypeNotFound}))
	assert.Equal(t, "invalid_input", ErrorCode(validationErr(t)))
	assert.Equal(t, "config_error", ErrorCode(&pkgerrors.ConfigError{Reason: "x"}))
	assert.Equal(t, "failed", ErrorCode(errors.New("boom")))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, &yourang.ItemError{Index: 0, Err: &operation.Error{
		Type:        operation.ErrorTypeAuth,
		Message:     "HTTP 401: unauthorized",
		StatusCode:  401,
		SuggestText: "Check your API key",
	}})

	out := buf.String()
	assert.Contains(t, out, "Error: item 0: HTTP 401: unauthorized")
	assert.Contains(t, out, "Suggestion:")
	assert.Contains(t, out, "Check your API key")

	buf.Reset()
	PrintError(&buf, errors.New("plain"))
	assert.Contains(t, buf.String(), "Error: plain")
	assert.NotContains(t, buf.String(), "Suggestion")
}

func TestEmitJSONError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EmitJSONError(&buf, validationErr(t)))

	var got struct {
		Success bool        `json:"success"`
		Errors  []JSONError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.False(t, got.Success)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "invalid_input", got.Errors[0].Code)
	assert.Equal(t, "Contact ID is required", got.Errors[0].Message)
	assert.NotEmpty(t, got.Errors[0].Suggestion)
}

func TestSetFlagsForTest(t *testing.T) {
	restore := SetFlagsForTest(true, false, true, "/tmp/x.yaml")
	assert.True(t, GetVerbose())
	assert.True(t, GetJSON())
	assert.Equal(t, "/tmp/x.yaml", GetConfigPath())
	restore()
	assert.Equal(t, "", GetConfigPath())
}
