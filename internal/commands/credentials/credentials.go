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

// Package credentials implements "yourang credentials": storing, testing
// and removing the API key kept in the OS keychain.
package credentials

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tombee/yourang/internal/commands/shared"
	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/log"
	"github.com/tombee/yourang/internal/secrets"
	yerrors "github.com/tombee/yourang/pkg/errors"
)

// NewCommand creates the credentials command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the Yourang API key",
		Long: `Manage the Yourang API key stored in the system keychain
(macOS Keychain, Linux Secret Service, Windows Credential Manager).

The key is looked up in this order:
  1. YOURANG_API_KEY
  2. api_key in the config file (a value, ${VAR} or keychain:<name>)
  3. the keychain entry written by 'yourang credentials set'`,
	}

	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newTestCommand())
	cmd.AddCommand(newRemoveCommand())

	return cmd
}

func newSetCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key in the keychain",
		Long: `Store the API key in the system keychain.

The key is read from standard input when it is piped, otherwise from a
hidden prompt.

Examples:
  yourang credentials set
  echo "$KEY" | yourang credentials set
  yourang credentials set --name staging   # then api_key: keychain:staging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := readSecretValue(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to read API key: %w", err)
			}
			if value == "" {
				return shared.NewInvalidInputError("API key cannot be empty", nil)
			}

			if err := secrets.NewDefaultResolver().Store(cmd.Context(), "keychain", name, value); err != nil {
				if errors.Is(err, secrets.ErrBackendUnavailable) {
					return fmt.Errorf("%w\n\nSet YOURANG_API_KEY instead when no keychain is available", err)
				}
				return err
			}

			cmd.Println(shared.RenderOK(fmt.Sprintf("API key stored in keychain as %q (%s)", name, log.SanitizeAPIKey(value))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", secrets.DefaultAPIKeyName, "Keychain entry name")
	return cmd
}

func newTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check the API key against the Yourang API",
		Long:  `Send GET /profile with the configured API key and report the result.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := shared.OpenSession(ctx, shared.SessionOptions{LogOutput: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close(context.Background()) }()

			profile, err := yourang.VerifyCredentials(ctx, sess.Client)
			if err != nil {
				return err
			}

			if shared.GetJSON() {
				return shared.EmitJSON(cmd.OutOrStdout(), profile)
			}
			cmd.Println(shared.RenderOK("Credentials are valid for " + sess.Config.BaseURL))
			if account := describeProfile(profile); account != "" {
				cmd.Println("  " + shared.RenderLabel("account:") + " " + account)
			}
			return nil
		},
	}
}

func newRemoveCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the API key from the keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				cmd.Printf("Remove keychain entry %q? [y/N]: ", name)
				response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				response = strings.ToLower(strings.TrimSpace(response))
				if response != "y" && response != "yes" {
					cmd.Println("Removal canceled")
					return nil
				}
			}

			if err := secrets.NewDefaultResolver().Remove(cmd.Context(), "keychain", name); err != nil {
				if errors.Is(err, secrets.ErrSecretNotFound) {
					return &yerrors.NotFoundError{
						Resource: "keychain entry",
						ID:       name,
						Hint:     "Run 'yourang credentials set' to store an API key",
					}
				}
				return err
			}

			cmd.Println(shared.RenderOK(fmt.Sprintf("Keychain entry %q removed", name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", secrets.DefaultAPIKeyName, "Keychain entry name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}

// readSecretValue reads a piped value, or prompts without echo when in is
// a terminal.
func readSecretValue(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Enter API key (hidden): ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// describeProfile picks a human label out of the /profile response.
func describeProfile(profile any) string {
	m, ok := profile.(map[string]any)
	if !ok {
		return ""
	}
	if data, ok := m["data"].(map[string]any); ok {
		m = data
	}
	for _, key := range []string{"email", "name", "company_name", "id"} {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
