package yourang

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tombee/yourang/internal/operation/api"
)

// Parameters is the read-only, per-item parameter lookup supplied by the
// host. Values are loosely typed: strings, bools, numbers, maps and slices
// as produced by a JSON or YAML decoder.
type Parameters interface {
	// Param returns the value of name for the item at itemIndex, or def
	// when the item has no value for it.
	Param(name string, itemIndex int, def any) any
}

// Batch is a Parameters source with a known number of items.
type Batch interface {
	Parameters

	// Len returns the number of items.
	Len() int
}

// Items is a Batch backed by one parameter map per item.
type Items []map[string]any

// Param implements Parameters. A nil value counts as absent.
func (it Items) Param(name string, itemIndex int, def any) any {
	if itemIndex < 0 || itemIndex >= len(it) {
		return def
	}
	v, ok := it[itemIndex][name]
	if !ok || v == nil {
		return def
	}
	return v
}

// Len implements Batch.
func (it Items) Len() int {
	return len(it)
}

// isBlank reports whether v counts as "no value": nil, or a string that is
// empty after trimming. false and 0 are values.
func isBlank(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	default:
		return false
	}
}

// toString renders scalar parameter values as strings.
func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return api.FormatQueryValue(s)
	}
}

func paramString(p Parameters, name string, itemIndex int) string {
	return toString(p.Param(name, itemIndex, nil))
}

// paramMap returns a collection parameter, or an empty map.
func paramMap(p Parameters, name string, itemIndex int) map[string]any {
	return asMap(p.Param(name, itemIndex, nil))
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	default:
		return nil
	}
}

// toBool accepts bools and the strings "true"/"false".
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

func paramBool(p Parameters, name string, itemIndex int, def bool) bool {
	if b, ok := toBool(p.Param(name, itemIndex, def)); ok {
		return b
	}
	return def
}

// toInt accepts integral numbers of any Go numeric type and numeric strings.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// paramInt reads an integer parameter. An absent value yields def; a value
// that is not an integer is a validation error naming the parameter.
func paramInt(p Parameters, name string, itemIndex int, def int) (int, error) {
	v := p.Param(name, itemIndex, nil)
	if isBlank(v) {
		return def, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, invalidError(name, "%s must be an integer, got %v", name, v)
	}
	return n, nil
}

// optionalInt is paramInt for parameters that are omitted when absent.
func optionalInt(v any, name string) (any, error) {
	if isBlank(v) {
		return nil, nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil, invalidError(name, "%s must be an integer, got %v", name, v)
	}
	return n, nil
}

func checkRange(name string, n, min, max int) error {
	if n < min || (max > 0 && n > max) {
		if max > 0 {
			return invalidError(name, "%s must be between %d and %d, got %d", name, min, max, n)
		}
		return invalidError(name, "%s must be at least %d, got %d", name, min, n)
	}
	return nil
}

// describe is used in error messages for values of unexpected type.
func describe(v any) string {
	return fmt.Sprintf("%T", v)
}
