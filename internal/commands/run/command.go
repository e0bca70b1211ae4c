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

package run

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/yourang/internal/commands/shared"
	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/jq"
	"github.com/tombee/yourang/internal/operation"
)

// options holds the run flags.
type options struct {
	resource       string
	operation      string
	itemsPath      string
	params         []string
	continueOnFail bool
	jqExpr         string
	trace          bool
}

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a resource operation over a batch of items",
		Annotations: map[string]string{
			"group": "execution",
		},
		Long: `Run executes one Yourang resource operation for every input item and
prints one JSON output item per input item.

Items come from --items, a YAML or JSON file holding a list of parameter
maps ("-" reads stdin). Without --items a single empty item is used.
Every --param key=value is set on each item; values that look like JSON
objects, arrays or booleans are decoded.

The resource and operation are taken from the first item, so --resource
and --operation may be omitted when the items file sets them.

By default the first failing item aborts the run. With --continue-on-fail
a failing item produces {"error": "<message>"} and the run goes on.

Exit codes:
  0  success
  1  unexpected failure
  2  configuration error (missing API key, bad config file)
  3  invalid parameters or unknown resource/operation
  4  Yourang API error`,
		Example: `  # Fetch one contact
  yourang run --resource contact --operation get --param contactId=c_123

  # List completed calls and keep their ids
  yourang run --resource callHistory --operation getAll \
    --param 'filters={"call_status":"Completed"}' --jq '.[0] | map(.id)'

  # Run a batch of updates from a file, keeping going on errors
  yourang run --resource contact --operation update --items contacts.yaml --continue-on-fail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resource, "resource", "r", "", "Resource (callHistory, contact, action, event, agent, agentTool, workflow)")
	cmd.Flags().StringVarP(&opts.operation, "operation", "o", "", "Operation of the resource (see 'yourang operations')")
	cmd.Flags().StringVarP(&opts.itemsPath, "items", "i", "", "YAML or JSON file with a list of item parameter maps (- for stdin)")
	cmd.Flags().StringArrayVarP(&opts.params, "param", "p", nil, "Parameter key=value applied to every item (repeatable)")
	cmd.Flags().BoolVar(&opts.continueOnFail, "continue-on-fail", false, "Turn item failures into {\"error\": ...} output items")
	cmd.Flags().StringVar(&opts.jqExpr, "jq", "", "jq expression applied to the output items")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Export one span per item to stderr")

	return cmd
}

func runOperation(cmd *cobra.Command, opts options) error {
	items, err := buildItems(opts.itemsPath, cmd.InOrStdin(), opts.params, opts.resource, opts.operation)
	if err != nil {
		return shared.NewInvalidInputError("invalid input", err)
	}

	var query *jq.Query
	if opts.jqExpr != "" {
		query, err = jq.Compile(opts.jqExpr, 0, 0)
		if err != nil {
			return shared.NewInvalidInputError("invalid --jq", err)
		}
	}

	ctx := cmd.Context()
	sess, err := shared.OpenSession(ctx, shared.SessionOptions{
		Trace:     opts.trace,
		LogOutput: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = sess.Close(shutdownCtx)
	}()

	out, err := sess.Node(yourang.WithContinueOnFail(opts.continueOnFail)).Run(ctx, items)
	if err != nil {
		return err
	}

	var result any = out
	if query != nil {
		result, err = query.Run(ctx, out)
		if err != nil {
			return shared.NewInvalidInputError("--jq failed", operation.NewTransformError(query.String(), err))
		}
	}

	return shared.EmitJSON(cmd.OutOrStdout(), result)
}
