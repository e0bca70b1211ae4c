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

package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/yourang/internal/commands/shared"
)

func TestVersionOutput(t *testing.T) {
	shared.SetVersion("1.0.0", "test123", "2026-01-05")
	defer shared.SetVersion("dev", "unknown", "unknown")

	cmd := NewVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "yourang version 1.0.0")
	assert.Contains(t, buf.String(), "test123")
}

func TestVersionJSONOutput(t *testing.T) {
	shared.SetVersion("1.0.0", "test123", "2026-01-05")
	defer shared.SetVersion("dev", "unknown", "unknown")
	defer shared.SetFlagsForTest(false, false, false, "")()

	rootCmd := &cobra.Command{Use: "test"}
	_, _, jsonPtr, _ := shared.RegisterFlagPointers()
	rootCmd.PersistentFlags().BoolVar(jsonPtr, "json", false, "JSON output")
	rootCmd.AddCommand(NewVersionCommand())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version", "--json"})
	require.NoError(t, rootCmd.Execute())

	var info VersionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info), buf.String())
	assert.Equal(t, VersionInfo{
		Version:   "1.0.0",
		Commit:    "test123",
		BuildDate: "2026-01-05",
		GoVersion: runtime.Version(),
	}, info)
}
