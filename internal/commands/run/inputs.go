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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tombee/yourang/internal/integration/yourang"
	yerrors "github.com/tombee/yourang/pkg/errors"
)

// loadItems reads the items file: a YAML or JSON list of parameter maps,
// or a single map. "-" reads stdin.
func loadItems(path string, stdin io.Reader) (yourang.Items, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, yerrors.Wrap(err, "failed to read from stdin")
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, yerrors.Wrapf(err, "failed to read items file %s", path)
		}
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse items file: %w", err)
	}
	if len(node.Content) == 0 {
		return yourang.Items{}, nil
	}

	root := node.Content[0]
	keepPhoneLiterals(root)
	switch root.Kind {
	case yaml.SequenceNode:
		var items []map[string]any
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("items file must be a list of maps: %w", err)
		}
		for i := range items {
			if items[i] == nil {
				items[i] = map[string]any{}
			}
		}
		return yourang.Items(items), nil
	case yaml.MappingNode:
		var item map[string]any
		if err := root.Decode(&item); err != nil {
			return nil, fmt.Errorf("failed to parse items file: %w", err)
		}
		return yourang.Items{item}, nil
	default:
		return nil, fmt.Errorf("items file must be a list of maps or a map")
	}
}

// keepPhoneLiterals retags plain numeric scalars written with a leading
// "+" or a leading zero as strings, so +393331234567 and 0612345678 are
// not turned into numbers.
func keepPhoneLiterals(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode {
		if n.Style == 0 && (n.Tag == "!!int" || n.Tag == "!!float") && looksLikePhone(n.Value) {
			n.Tag = "!!str"
		}
		return
	}
	for _, child := range n.Content {
		keepPhoneLiterals(child)
	}
}

func looksLikePhone(v string) bool {
	if strings.HasPrefix(v, "+") {
		return true
	}
	return len(v) > 1 && v[0] == '0' && v[1] >= '0' && v[1] <= '9'
}

// parseParams parses repeated key=value flags. Values that look like JSON
// objects, arrays or booleans are decoded; everything else stays a string
// so phone numbers and ids keep their exact text.
func parseParams(raw []string) (map[string]any, error) {
	params := make(map[string]any, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", kv)
		}
		params[key] = decodeParamValue(value)
	}
	return params, nil
}

func decodeParamValue(value string) any {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "true":
		return true
	case trimmed == "false":
		return false
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return decoded
		}
	}
	return value
}

// buildItems assembles the batch: the items file (or one empty item),
// every --param applied to each item, and resource/operation set on the
// first item when given as flags.
func buildItems(itemsPath string, stdin io.Reader, params []string, resource, operation string) (yourang.Items, error) {
	items := yourang.Items{{}}
	if itemsPath != "" {
		loaded, err := loadItems(itemsPath, stdin)
		if err != nil {
			return nil, err
		}
		if len(loaded) == 0 {
			return nil, fmt.Errorf("items file %s contains no items", itemsPath)
		}
		items = loaded
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		for k, v := range overrides {
			item[k] = v
		}
	}

	if resource != "" {
		items[0]["resource"] = resource
	}
	if operation != "" {
		items[0]["operation"] = operation
	}
	if items[0]["resource"] == nil || items[0]["operation"] == nil {
		return nil, fmt.Errorf("--resource and --operation are required unless the first item sets them")
	}
	return items, nil
}
