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

package operations

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/yourang/internal/commands/shared"
	"github.com/tombee/yourang/internal/operation/api"
)

func execute(t *testing.T, jsonOutput bool, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(shared.SetFlagsForTest(false, false, jsonOutput, ""))

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestOperations_Text(t *testing.T) {
	out, err := execute(t, false)
	require.NoError(t, err)

	for _, resource := range []string{"callHistory", "contact", "action", "event", "agent", "agentTool", "workflow"} {
		assert.Contains(t, out, resource)
	}
	assert.Contains(t, out, "getTranscript")
	assert.NotContains(t, out, "contactId")
}

func TestOperations_SingleResourceShowsParams(t *testing.T) {
	out, err := execute(t, false, "event")
	require.NoError(t, err)

	assert.Contains(t, out, "updateStatus")
	assert.Contains(t, out, "eventId")
	assert.Contains(t, out, "required")
	assert.NotContains(t, out, "getTranscript")
}

func TestOperations_JSON(t *testing.T) {
	out, err := execute(t, true, "agent")
	require.NoError(t, err)

	var listing []ResourceListing
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	require.Len(t, listing, 1)
	assert.Equal(t, "agent", listing[0].Resource)
	require.Len(t, listing[0].Operations, 2)
	assert.Equal(t, "get", listing[0].Operations[0].Name)
	assert.Equal(t, "agentId", listing[0].Operations[0].Parameters[0].Name)
}

func TestOperations_UnknownResource(t *testing.T) {
	_, err := execute(t, false, "invoice")
	require.Error(t, err)
	assert.Equal(t, shared.ExitInvalidInput, shared.ExitCode(err))
	assert.Contains(t, err.Error(), "callHistory, contact")
}

func TestParamDetail(t *testing.T) {
	assert.Equal(t, "(string, required) The ID", paramDetail(api.ParameterInfo{Name: "id", Type: "string", Required: true, Description: "The ID"}))
	assert.Equal(t, "(string) [a|b] default: a", paramDetail(api.ParameterInfo{Type: "string", Enum: []string{"a", "b"}, Default: "a"}))
}
