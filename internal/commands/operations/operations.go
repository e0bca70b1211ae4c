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

// Package operations implements "yourang operations", the listing of
// resources, operations and their parameters.
package operations

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/yourang/internal/commands/shared"
	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/operation/api"
)

// ResourceListing is the JSON form of one resource.
type ResourceListing struct {
	Resource   string             `json:"resource"`
	Operations []OperationListing `json:"operations"`
}

// OperationListing is the JSON form of one operation.
type OperationListing struct {
	api.OperationInfo
	Parameters []api.ParameterInfo `json:"parameters"`
}

// NewCommand creates the operations command
func NewCommand() *cobra.Command {
	var verboseParams bool

	cmd := &cobra.Command{
		Use:   "operations [resource]",
		Short: "List resources, operations and their parameters",
		Example: `  yourang operations
  yourang operations contact --params
  yourang operations --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			listing, err := collect(filter)
			if err != nil {
				return err
			}

			if shared.GetJSON() {
				return shared.EmitJSON(cmd.OutOrStdout(), listing)
			}
			render(cmd.OutOrStdout(), listing, verboseParams || filter != "")
			return nil
		},
	}

	cmd.Flags().BoolVar(&verboseParams, "params", false, "Show parameters of every operation")
	return cmd
}

// collect gathers operation metadata for one resource, or all of them.
func collect(filter string) ([]ResourceListing, error) {
	resources := yourang.Resources()
	if filter != "" {
		h, err := yourang.Lookup(filter)
		if err != nil {
			return nil, shared.NewInvalidInputError(
				fmt.Sprintf("valid resources: %s", joinResources(resources)), err)
		}
		resources = []yourang.Resource{h.Resource()}
	}

	listing := make([]ResourceListing, 0, len(resources))
	for _, r := range resources {
		h, err := yourang.Lookup(string(r))
		if err != nil {
			return nil, err
		}
		entry := ResourceListing{Resource: string(r)}
		for _, info := range h.Operations() {
			op := OperationListing{OperationInfo: info}
			if schema := h.OperationSchema(info.Name); schema != nil {
				op.Parameters = schema.Parameters
			}
			entry.Operations = append(entry.Operations, op)
		}
		listing = append(listing, entry)
	}
	return listing, nil
}

func render(w io.Writer, listing []ResourceListing, withParams bool) {
	for i, r := range listing {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, shared.Header.Render(r.Resource))
		for _, op := range r.Operations {
			name := op.Name
			if hasTag(op.Tags, api.TagDestructive) {
				name = shared.Destructive.Render(name)
			}
			fmt.Fprintf(w, "  %-24s %s\n", name, op.Description)
			if !withParams {
				continue
			}
			for _, p := range op.Parameters {
				fmt.Fprintf(w, "      %s %s\n", p.Name, shared.Muted.Render(paramDetail(p)))
			}
		}
	}
}

// paramDetail renders "(type, required) description [a|b]".
func paramDetail(p api.ParameterInfo) string {
	kind := p.Type
	if p.Required {
		kind += ", required"
	}
	detail := fmt.Sprintf("(%s)", kind)
	if p.Description != "" {
		detail += " " + p.Description
	}
	if len(p.Enum) > 0 {
		detail += " [" + strings.Join(p.Enum, "|") + "]"
	}
	if p.Default != nil {
		detail += fmt.Sprintf(" default: %v", p.Default)
	}
	return detail
}

func joinResources(resources []yourang.Resource) string {
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
