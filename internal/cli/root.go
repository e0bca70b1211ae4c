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

package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tombee/yourang/internal/commands/credentials"
	"github.com/tombee/yourang/internal/commands/mcpserver"
	"github.com/tombee/yourang/internal/commands/operations"
	"github.com/tombee/yourang/internal/commands/run"
	"github.com/tombee/yourang/internal/commands/shared"
	versioncmd "github.com/tombee/yourang/internal/commands/version"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command with every subcommand.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yourang",
		Short: "yourang - Yourang.ai phone assistant API client",
		Long: `yourang calls the Yourang.ai API: call history, contacts, actions,
calendar events, agents, agent tools and workflows.

Run 'yourang credentials set' to store your API key, then
'yourang operations' to see what can be run.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	verbose, quiet, json, config := shared.RegisterFlagPointers()

	cmd.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().BoolVar(json, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(config, "config", "", "Path to config file (default: ~/.config/yourang/config.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	cmd.AddCommand(run.NewCommand())
	cmd.AddCommand(operations.NewCommand())
	cmd.AddCommand(credentials.NewCommand())
	cmd.AddCommand(mcpserver.NewCommand())
	cmd.AddCommand(versioncmd.NewVersionCommand())

	return cmd
}

// normalizeFlagName accepts underscores in flag names, so --continue_on_fail
// works like --continue-on-fail.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
