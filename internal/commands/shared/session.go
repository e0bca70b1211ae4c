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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tombee/yourang/internal/config"
	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/log"
	"github.com/tombee/yourang/internal/operation/api"
	"github.com/tombee/yourang/internal/operation/transport"
	"github.com/tombee/yourang/internal/secrets"
	"github.com/tombee/yourang/internal/tracing"
	pkgerrors "github.com/tombee/yourang/pkg/errors"
)

// SessionOptions adjusts how a Session is opened.
type SessionOptions struct {
	// Trace enables span export regardless of the config file.
	Trace bool

	// LogOutput receives logs and exported spans. Defaults to os.Stderr.
	LogOutput io.Writer

	// Secrets resolves the API key. Defaults to env plus OS keychain.
	Secrets *secrets.Resolver
}

// Session bundles the configuration, logger and API client a command
// uses to talk to Yourang.
type Session struct {
	Config *config.Config
	Logger *slog.Logger
	Client *api.Client

	tracer *tracing.Provider
}

// OpenSession loads the configuration selected by the global flags,
// resolves the API key and builds the HTTP client.
func OpenSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return nil, err
	}

	output := opts.LogOutput
	if output == nil {
		output = os.Stderr
	}
	switch {
	case GetVerbose():
		cfg.Log.Level = "debug"
	case GetQuiet():
		cfg.Log.Level = "error"
	}
	cfg.Log.Output = output
	logger := log.New(&cfg.Log)

	resolver := opts.Secrets
	if resolver == nil {
		resolver = secrets.NewDefaultResolver()
	}
	apiKey, err := resolver.APIKey(ctx, cfg.APIKey)
	if err != nil {
		return nil, &pkgerrors.ConfigError{Key: "api_key", Reason: "cannot resolve API key", Cause: err}
	}
	if apiKey == "" {
		return nil, &pkgerrors.ConfigError{
			Key:    "api_key",
			Reason: "no API key configured; run 'yourang credentials set' or set YOURANG_API_KEY",
		}
	}

	client, err := newClient(cfg, apiKey, logger)
	if err != nil {
		return nil, err
	}

	if opts.Trace {
		cfg.Tracing.Enabled = true
	}
	cfg.Tracing.ServiceVersion = version
	cfg.Tracing.Writer = output
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to start tracing: %w", err)
	}

	return &Session{
		Config: cfg,
		Logger: logger,
		Client: client,
		tracer: provider,
	}, nil
}

func newClient(cfg *config.Config, apiKey string, logger *slog.Logger) (*api.Client, error) {
	tcfg := cfg.TransportConfig(apiKey)
	tcfg.Logger = logger

	tr, err := transport.NewHTTPTransport(tcfg)
	if err != nil {
		return nil, &pkgerrors.ConfigError{Key: "base_url", Reason: "invalid transport settings", Cause: err}
	}
	if limiter := cfg.Limiter(); limiter != nil {
		tr.SetRateLimiter(limiter)
	}

	return api.NewClient(&api.ClientConfig{Transport: tr, BaseURL: tr.BaseURL()})
}

// Node returns a node over the session client with the session logger
// and tracer.
func (s *Session) Node(opts ...yourang.Option) *yourang.Node {
	base := []yourang.Option{
		yourang.WithLogger(s.Logger),
		yourang.WithTracer(s.tracer.Tracer()),
	}
	return yourang.NewNode(s.Client, append(base, opts...)...)
}

// Close flushes exported spans.
func (s *Session) Close(ctx context.Context) error {
	return s.tracer.Shutdown(ctx)
}
