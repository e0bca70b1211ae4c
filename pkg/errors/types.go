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

package errors

import (
	"fmt"
)

// NotFoundError reports a missing local resource such as a stored
// credential or a config file.
type NotFoundError struct {
	// Resource is the kind of thing that is missing (e.g., "credential").
	Resource string

	// ID identifies the missing item.
	ID string

	// Hint is returned by Suggestion.
	Hint string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// IsUserVisible implements UserVisibleError.
func (e *NotFoundError) IsUserVisible() bool { return true }

// UserMessage implements UserVisibleError.
func (e *NotFoundError) UserMessage() string { return e.Error() }

// Suggestion implements UserVisibleError.
func (e *NotFoundError) Suggestion() string { return e.Hint }

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "api_key", "rate_limit.burst")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config error: %s", e.Reason)
	if e.Key != "" {
		msg = fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// IsUserVisible implements UserVisibleError.
func (e *ConfigError) IsUserVisible() bool { return true }

// UserMessage implements UserVisibleError.
func (e *ConfigError) UserMessage() string { return e.Error() }

// Suggestion implements UserVisibleError.
func (e *ConfigError) Suggestion() string {
	return "Check the config file (see 'yourang --help' for its location) and the YOURANG_* environment variables"
}
