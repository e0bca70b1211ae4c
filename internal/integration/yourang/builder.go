package yourang

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultLimit is sent when returnAll is false and no limit is given.
const DefaultLimit = 50

// Field describes one body field read from a parameter.
type Field struct {
	// Param is the parameter name.
	Param string

	// Key is the body key. Defaults to Param.
	Key string

	// Required fields must have a non-blank value.
	Required bool
}

// BuildBody collects the non-blank values of fields into a request body.
// Every missing required field is reported in a single *ValidationError.
func BuildBody(p Parameters, itemIndex int, fields []Field) (map[string]any, error) {
	body := make(map[string]any, len(fields))
	var missing []string

	for _, f := range fields {
		value := p.Param(f.Param, itemIndex, nil)
		if isBlank(value) {
			if f.Required {
				missing = append(missing, f.Param)
			}
			continue
		}

		key := f.Key
		if key == "" {
			key = f.Param
		}
		body[key] = value
	}

	if len(missing) > 0 {
		return nil, missingFieldsError(missing)
	}
	return body, nil
}

// BuildQuery copies params, dropping nil values and empty strings. false
// and 0 are kept.
func BuildQuery(params map[string]any) map[string]any {
	qs := make(map[string]any, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		qs[key] = value
	}
	return qs
}

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExtractDate returns the YYYY-MM-DD part of a date or ISO 8601 datetime,
// or "" when there is none.
func ExtractDate(dateTime string) string {
	trimmed := strings.TrimSpace(dateTime)
	if trimmed == "" {
		return ""
	}
	if dateOnly.MatchString(trimmed) {
		return trimmed
	}

	prefix, _, _ := strings.Cut(dateTime, "T")
	if dateOnly.MatchString(prefix) {
		return prefix
	}
	return ""
}

// ParseMultiline splits text into trimmed, non-empty lines.
func ParseMultiline(input string) []string {
	out := []string{}
	for _, line := range strings.Split(input, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// pageLimit returns the limit to send: nil when returnAll is set, otherwise
// the limit parameter (DefaultLimit when absent) checked against [1, max].
// max <= 0 means no upper bound.
func pageLimit(p Parameters, itemIndex int, max int) (any, error) {
	if paramBool(p, "returnAll", itemIndex, false) {
		return nil, nil
	}

	limit, err := paramInt(p, "limit", itemIndex, DefaultLimit)
	if err != nil {
		return nil, err
	}
	if err := checkRange("limit", limit, 1, max); err != nil {
		return nil, err
	}
	return limit, nil
}

// pathID reads a required identifier and escapes it for use as one path
// segment.
func pathID(p Parameters, itemIndex int, param, label string) (string, error) {
	id := strings.TrimSpace(paramString(p, param, itemIndex))
	if id == "" {
		return "", requiredError(param, label)
	}
	return escapeSegment(id), nil
}

// escapeSegment percent-encodes s like encodeURIComponent, so reserved
// characters such as '+' and '/' in phone numbers survive the round trip.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
