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

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tombee/yourang/internal/commands/shared"
	"github.com/tombee/yourang/internal/mcp/server"
)

// NewCommand creates the mcp command
func NewCommand() *cobra.Command {
	var (
		metricsAddr    string
		callsPerMinute int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve Yourang operations as MCP tools",
		Long: `Start a Model Context Protocol server on stdio.

Every resource operation is exposed as one tool named
yourang_<resource>_<operation>, whose input schema lists the operation
parameters. The yourang_list_operations tool describes all of them.

Configuration example for an MCP client:
  {
    "mcpServers": {
      "yourang": {
        "command": "yourang",
        "args": ["mcp"]
      }
    }
  }

With --metrics-addr the Prometheus request metrics are served on
http://<addr>/metrics while the server runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCPServer(cmd, metricsAddr, callsPerMinute)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().IntVar(&callsPerMinute, "calls-per-minute", 100, "Maximum tool calls per minute")

	return cmd
}

func runMCPServer(cmd *cobra.Command, metricsAddr string, callsPerMinute int) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logs must stay off stdout, which carries the protocol.
	sess, err := shared.OpenSession(ctx, shared.SessionOptions{LogOutput: os.Stderr})
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(context.Background()) }()

	versionStr, _, _ := shared.GetVersion()
	srv, err := server.NewServer(server.ServerConfig{
		Name:           "yourang",
		Version:        versionStr,
		Executor:       sess.Node(),
		CallsPerMinute: callsPerMinute,
		Logger:         sess.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if metricsAddr != "" {
		metrics, err := startMetricsServer(metricsAddr, sess.Logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metrics.Shutdown(shutdownCtx)
		}()
	}

	return srv.Run(ctx)
}

// newMetricsHandler serves the default Prometheus registry on /metrics.
func newMetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// startMetricsServer listens on addr and serves metrics in the background.
func startMetricsServer(addr string, logger *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newMetricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	logger.Info("serving metrics", "addr", ln.Addr().String())
	return srv, nil
}
