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

// Package server exposes every Yourang resource operation as an MCP tool
// over stdio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/log"
)

// Executor runs one resource operation. *yourang.Node implements it.
type Executor interface {
	Execute(ctx context.Context, resource, operation string, p yourang.Parameters, itemIndex int) (any, error)
}

// Server wraps the MCP server and provides Yourang tools
type Server struct {
	mcpServer   *server.MCPServer
	name        string
	version     string
	executor    Executor
	rateLimiter *RateLimiter
	logger      *slog.Logger
	tools       []mcp.Tool
}

// ServerConfig configures the MCP server
type ServerConfig struct {
	// Name is the server name (default: "yourang")
	Name string

	// Version is the yourang version
	Version string

	// Executor performs the API calls behind each tool. Required.
	Executor Executor

	// CallsPerMinute caps tool calls (default: 100)
	CallsPerMinute int

	// Logger receives server logs. It must not write to stdout, which
	// carries the MCP protocol.
	Logger *slog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(config ServerConfig) (*Server, error) {
	if config.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if config.Name == "" {
		config.Name = "yourang"
	}
	if config.Version == "" {
		config.Version = "dev"
	}
	if config.CallsPerMinute <= 0 {
		config.CallsPerMinute = 100
	}
	if config.Logger == nil {
		config.Logger = log.Discard()
	}

	s := &Server{
		mcpServer:   server.NewMCPServer(config.Name, config.Version),
		name:        config.Name,
		version:     config.Version,
		executor:    config.Executor,
		rateLimiter: NewRateLimiter(config.CallsPerMinute),
		logger:      config.Logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Tools returns the registered tool definitions.
func (s *Server) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

// Run serves MCP over stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve speaks MCP over the given streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Starting yourang MCP server",
		slog.String("version", s.version),
		slog.Int("tools", len(s.tools)),
	)

	stdio := server.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server error: %w", err)
	}

	s.logger.Info("Shutting down yourang MCP server")
	return nil
}

// Helper function to create error response
func errorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// Helper function to create success response
func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// jsonResponse renders v as indented JSON text.
func jsonResponse(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textResponse(fmt.Sprintf("%v", v))
	}
	return textResponse(string(data))
}
