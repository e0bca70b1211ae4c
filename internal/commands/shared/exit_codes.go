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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tombee/yourang/internal/integration/yourang"
	"github.com/tombee/yourang/internal/operation"
	pkgerrors "github.com/tombee/yourang/pkg/errors"
)

// Exit codes returned by yourang commands
const (
	ExitSuccess       = 0
	ExitFailed        = 1
	ExitInvalidConfig = 2
	ExitInvalidInput  = 3
	ExitAPIError      = 4
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewInvalidInputError creates an error for unusable command input such as
// an unreadable items file.
func NewInvalidInputError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitInvalidInput,
		Message: msg,
		Cause:   cause,
	}
}

// ExitCode maps an error to the process exit code. Parameter and dispatch
// problems exit with 3, API failures with 4, configuration problems with 2
// and anything else with 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, yourang.ErrValidation),
		errors.Is(err, yourang.ErrUnknownResource),
		errors.Is(err, yourang.ErrUnknownOperation):
		return ExitInvalidInput
	}

	var opErr *operation.Error
	if errors.As(err, &opErr) && opErr.Type != operation.ErrorTypeCancelled {
		return ExitAPIError
	}

	var cfgErr *pkgerrors.ConfigError
	if errors.As(err, &cfgErr) {
		return ExitInvalidConfig
	}

	return ExitFailed
}

// ErrorCode returns the machine-readable code used in JSON error output.
func ErrorCode(err error) string {
	var opErr *operation.Error
	if errors.As(err, &opErr) && opErr.Type != "" {
		return string(opErr.Type)
	}

	switch ExitCode(err) {
	case ExitInvalidInput:
		return "invalid_input"
	case ExitInvalidConfig:
		return "config_error"
	default:
		return "failed"
	}
}

// PrintError writes the error and, when the chain carries one, its
// suggestion.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, RenderError("Error: "+err.Error()))

	if userErr, ok := pkgerrors.FindUserVisible(err); ok {
		if suggestion := userErr.Suggestion(); suggestion != "" {
			fmt.Fprintf(w, "\n%s %s\n", RenderLabel("Suggestion:"), suggestion)
		}
	}
}

// HandleExitError reports err and exits with its exit code. With --json the
// error is written to stdout as a JSON envelope.
func HandleExitError(err error) {
	if err == nil {
		return
	}

	if GetJSON() {
		_ = EmitJSONError(os.Stdout, err)
	} else {
		PrintError(os.Stderr, err)
	}

	os.Exit(ExitCode(err))
}
