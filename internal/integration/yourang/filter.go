package yourang

import (
	"strings"
)

// Combine joins filter terms.
type Combine string

const (
	// CombineAnd requires every term to match.
	CombineAnd Combine = "&"
	// CombineOr requires any term to match.
	CombineOr Combine = "|"
)

// FilterTerm is one key:value condition of a filter string.
type FilterTerm struct {
	Key   string
	Value any
}

// BuildFilter renders the filter query value for list endpoints.
//
// Non-blank advanced text is returned trimmed and otherwise untouched; the
// vendor API validates it. Otherwise each term with a non-blank value is
// rendered as key:value, in the given order, and joined with combine
// (CombineAnd when empty). The result is "" when no term has a value.
func BuildFilter(terms []FilterTerm, combine Combine, advanced string) string {
	if trimmed := strings.TrimSpace(advanced); trimmed != "" {
		return trimmed
	}

	if combine == "" {
		combine = CombineAnd
	}

	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if isBlank(t.Value) {
			continue
		}
		parts = append(parts, t.Key+":"+toString(t.Value))
	}
	return strings.Join(parts, string(combine))
}

// combineFrom reads a combine operator, falling back to CombineAnd for
// anything other than "|".
func combineFrom(v any) Combine {
	if s, ok := v.(string); ok && Combine(strings.TrimSpace(s)) == CombineOr {
		return CombineOr
	}
	return CombineAnd
}
