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

// Package config loads the yourang configuration from a YAML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/tombee/yourang/internal/log"
	"github.com/tombee/yourang/internal/operation/transport"
	"github.com/tombee/yourang/internal/tracing"
	yerrors "github.com/tombee/yourang/pkg/errors"
)

// DefaultBaseURL is the production Yourang API.
const DefaultBaseURL = "https://api.yourang.ai/v1"

// Config represents the complete yourang configuration.
type Config struct {
	// BaseURL is the API root, including the version prefix.
	// Environment: YOURANG_BASE_URL
	BaseURL string `yaml:"base_url"`

	// APIKey is the API key or a reference to it: "${VAR}" reads an
	// environment variable and "keychain:<name>" the OS keychain.
	// Environment: YOURANG_API_KEY
	APIKey string `yaml:"api_key,omitempty"`

	// Timeout bounds each HTTP request.
	// Environment: YOURANG_TIMEOUT (duration such as "10s", or seconds)
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit throttles outbound requests on the client side.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Log     log.Config     `yaml:"log"`
	Tracing tracing.Config `yaml:"tracing"`
}

// RateLimitConfig configures the client-side request rate. A zero rate
// disables throttling.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate.
	// Environment: YOURANG_RATE_LIMIT
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the number of requests allowed at once. Defaults to the
	// rate rounded up, and at least 1.
	Burst int `yaml:"burst,omitempty"`
}

// Default returns the configuration used when no file or environment
// variable overrides a value.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: transport.DefaultTimeout,
		Log:     *log.DefaultConfig(),
	}
}

// Load reads the configuration. An explicit configPath must exist; with an
// empty path the default location is used when present. Environment
// variables override file values, and the result is validated.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	path := configPath
	if path == "" {
		defaultPath, err := ConfigPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				path = defaultPath
			}
		}
	}

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, &yerrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", path),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyDefaults fills zero values left by a minimal config file.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = transport.DefaultTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = log.FormatJSON
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = int(math.Max(1, math.Ceil(c.RateLimit.RequestsPerSecond)))
	}
}

// loadFromEnv overlays environment variables. Malformed numeric values are
// reported instead of being ignored.
func (c *Config) loadFromEnv() error {
	if val := os.Getenv("YOURANG_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("YOURANG_API_KEY"); val != "" {
		c.APIKey = val
	}
	if val := os.Getenv("YOURANG_TIMEOUT"); val != "" {
		d, err := parseDuration(val)
		if err != nil {
			return &yerrors.ConfigError{Key: "YOURANG_TIMEOUT", Reason: "invalid duration", Cause: err}
		}
		c.Timeout = d
	}
	if val := os.Getenv("YOURANG_RATE_LIMIT"); val != "" {
		rps, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return &yerrors.ConfigError{Key: "YOURANG_RATE_LIMIT", Reason: "invalid number", Cause: err}
		}
		c.RateLimit.RequestsPerSecond = rps
		if c.RateLimit.Burst == 0 && rps > 0 {
			c.RateLimit.Burst = int(math.Max(1, math.Ceil(rps)))
		}
	}
	if val := os.Getenv("YOURANG_TRACE"); val != "" {
		c.Tracing.Enabled = val == "1" || strings.EqualFold(val, "true")
	}

	log.ApplyEnv(&c.Log)
	return nil
}

// parseDuration accepts Go durations and plain seconds.
func parseDuration(val string) (time.Duration, error) {
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(val)
}

// Validate checks that the configuration is usable. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("base_url is not a valid URL: %v", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("base_url scheme must be http or https, got %q", u.Scheme))
	} else if u.Host == "" {
		errs = append(errs, "base_url must include a host")
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("timeout must not be negative, got %v", c.Timeout))
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Sprintf("rate_limit.requests_per_second must not be negative, got %v", c.RateLimit.RequestsPerSecond))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Sprintf("rate_limit.burst must not be negative, got %d", c.RateLimit.Burst))
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of [trace, debug, info, warn, error], got %q", c.Log.Level))
	}
	if c.Log.Format != log.FormatJSON && c.Log.Format != log.FormatText {
		errs = append(errs, fmt.Sprintf("log.format must be one of [json, text], got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return &yerrors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  errors.New(strings.Join(errs, "; ")),
		}
	}
	return nil
}

// Limiter returns the request limiter, or nil when throttling is off.
func (c *Config) Limiter() *rate.Limiter {
	if c.RateLimit.RequestsPerSecond <= 0 {
		return nil
	}
	burst := c.RateLimit.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit.RequestsPerSecond), burst)
}

// TransportConfig returns the HTTP transport settings for apiKey, which
// must already be resolved.
func (c *Config) TransportConfig(apiKey string) *transport.HTTPTransportConfig {
	cfg := &transport.HTTPTransportConfig{
		BaseURL: c.BaseURL,
		Timeout: c.Timeout,
	}
	if apiKey != "" {
		cfg.Auth = &transport.AuthConfig{Type: "bearer", Token: apiKey}
	}
	return cfg
}
