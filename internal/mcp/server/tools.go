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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/operation/api"
)

// listToolName is the tool that describes every other tool.
const listToolName = "yourang_list_operations"

// ToolName returns the MCP tool name for a resource operation.
func ToolName(resource yourang.Resource, operation string) string {
	return fmt.Sprintf("yourang_%s_%s", resource, operation)
}

// registerTools adds one tool per resource operation plus the listing tool.
func (s *Server) registerTools() error {
	listTool := mcp.Tool{
		Name:        listToolName,
		Description: "List Yourang resources and their operations with parameter descriptions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"resource": map[string]any{
					"type":        "string",
					"description": "Only list operations of this resource",
				},
			},
		},
	}
	s.addTool(listTool, s.handleListOperations)

	for _, resource := range yourang.Resources() {
		h, err := yourang.Lookup(string(resource))
		if err != nil {
			return err
		}
		for _, info := range h.Operations() {
			schema := h.OperationSchema(info.Name)
			if schema == nil {
				return fmt.Errorf("operation %s.%s has no schema", resource, info.Name)
			}
			tool := operationTool(resource, info, schema)
			s.addTool(tool, s.operationHandler(resource, info.Name))
		}
	}
	return nil
}

func (s *Server) addTool(tool mcp.Tool, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	s.tools = append(s.tools, tool)
	s.mcpServer.AddTool(tool, handler)
}

// operationTool builds the tool definition from operation metadata.
func operationTool(resource yourang.Resource, info api.OperationInfo, schema *api.OperationSchema) mcp.Tool {
	properties := make(map[string]any, len(schema.Parameters))
	var required []string
	for _, p := range schema.Parameters {
		properties[p.Name] = parameterSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}

	description := info.Description
	if hasTag(info.Tags, api.TagDestructive) {
		description += " This operation cannot be undone."
	}

	return mcp.Tool{
		Name:        ToolName(resource, info.Name),
		Description: description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}

// parameterSchema converts a parameter to its JSON Schema property.
func parameterSchema(p api.ParameterInfo) map[string]any {
	prop := map[string]any{"type": p.Type}
	switch p.Type {
	case "string", "integer", "number", "boolean", "object":
	case "array":
		prop["items"] = map[string]any{}
	default:
		prop["type"] = "string"
	}
	if p.Description != "" {
		prop["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		prop["enum"] = p.Enum
	}
	if p.Default != nil {
		prop["default"] = p.Default
	}
	return prop
}

// operationHandler returns the handler that runs resource.operation with
// the tool arguments as the single input item.
func (s *Server) operationHandler(resource yourang.Resource, operation string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !s.rateLimiter.AllowCall() {
			return errorResponse("Rate limit exceeded, retry in a few seconds"), nil
		}

		args := request.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		s.logger.Debug("Executing operation",
			"resource", string(resource),
			"operation", operation,
		)

		result, err := s.executor.Execute(ctx, string(resource), operation, yourang.Items{args}, 0)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			s.logger.Warn("Operation failed",
				"resource", string(resource),
				"operation", operation,
				"error", err,
			)
			return errorResponse(toolErrorMessage(err)), nil
		}

		return jsonResponse(result), nil
	}
}

// toolErrorMessage prefixes validation failures so the model can tell
// them from API errors.
func toolErrorMessage(err error) string {
	if errors.Is(err, yourang.ErrValidation) {
		return "Invalid parameters: " + err.Error()
	}
	return "Operation failed: " + err.Error()
}

type operationListing struct {
	Tool        string              `json:"tool"`
	Resource    string              `json:"resource"`
	Operation   string              `json:"operation"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []api.ParameterInfo `json:"parameters"`
}

func (s *Server) handleListOperations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := strings.TrimSpace(request.GetString("resource", ""))

	var listing []operationListing
	for _, resource := range yourang.Resources() {
		if filter != "" && string(resource) != filter {
			continue
		}
		h, err := yourang.Lookup(string(resource))
		if err != nil {
			return errorResponse(err.Error()), nil
		}
		for _, info := range h.Operations() {
			entry := operationListing{
				Tool:        ToolName(resource, info.Name),
				Resource:    string(resource),
				Operation:   info.Name,
				Description: info.Description,
				Tags:        info.Tags,
			}
			if schema := h.OperationSchema(info.Name); schema != nil {
				entry.Parameters = schema.Parameters
			}
			listing = append(listing, entry)
		}
	}

	if len(listing) == 0 {
		return errorResponse(fmt.Sprintf("unknown resource %q", filter)), nil
	}
	return jsonResponse(listing), nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
