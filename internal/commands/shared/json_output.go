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
	"encoding/json"
	"io"

	pkgerrors "github.com/tombee/yourang/pkg/errors"
)

// JSONError is the structured error written with --json.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type jsonErrorResponse struct {
	Success bool        `json:"success"`
	Errors  []JSONError `json:"errors"`
}

// EmitJSON writes v as indented JSON followed by a newline.
func EmitJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// EmitJSONError writes err as a JSON error envelope.
func EmitJSONError(w io.Writer, err error) error {
	jsonErr := JSONError{
		Code:    ErrorCode(err),
		Message: err.Error(),
	}
	if userErr, ok := pkgerrors.FindUserVisible(err); ok {
		jsonErr.Suggestion = userErr.Suggestion()
	}

	return EmitJSON(w, jsonErrorResponse{
		Success: false,
		Errors:  []JSONError{jsonErr},
	})
}
