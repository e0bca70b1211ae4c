package yourang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBody(t *testing.T) {
	fields := []Field{
		{Param: "first_name", Required: true},
		{Param: "phone_number", Required: true},
		{Param: "is_enabled"},
		{Param: "count"},
		{Param: "note", Key: "details"},
	}

	tests := []struct {
		name    string
		params  map[string]any
		want    map[string]any
		wantErr string
	}{
		{
			name:   "keeps false and zero",
			params: map[string]any{"first_name": "Ada", "phone_number": "+1", "is_enabled": false, "count": 0},
			want:   map[string]any{"first_name": "Ada", "phone_number": "+1", "is_enabled": false, "count": 0},
		},
		{
			name:   "drops blank optional values",
			params: map[string]any{"first_name": "Ada", "phone_number": "+1", "note": "   "},
			want:   map[string]any{"first_name": "Ada", "phone_number": "+1"},
		},
		{
			name:   "renames with key",
			params: map[string]any{"first_name": "Ada", "phone_number": "+1", "note": "vip"},
			want:   map[string]any{"first_name": "Ada", "phone_number": "+1", "details": "vip"},
		},
		{
			name:    "reports every missing field",
			params:  map[string]any{"first_name": "  "},
			wantErr: "Missing required fields: first_name, phone_number",
		},
		{
			name:    "one missing field",
			params:  map[string]any{"first_name": "Ada"},
			wantErr: "Missing required fields: phone_number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildBody(Items{tt.params}, 0, fields)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildBody_Idempotent(t *testing.T) {
	items := Items{{"first_name": "Ada", "phone_number": "+1"}}
	fields := []Field{{Param: "first_name", Required: true}, {Param: "phone_number"}}

	first, err := BuildBody(items, 0, fields)
	require.NoError(t, err)
	second, err := BuildBody(items, 0, fields)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildQuery(t *testing.T) {
	got := BuildQuery(map[string]any{
		"limit":       50,
		"filter":      "",
		"sort":        nil,
		"is_outbound": false,
		"offset":      0,
		"status":      " ",
	})

	assert.Equal(t, map[string]any{
		"limit":       50,
		"is_outbound": false,
		"offset":      0,
		"status":      " ",
	}, got)
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"  2024-03-15  ", "2024-03-15"},
		{"2024-03-15T10:30:00.000Z", "2024-03-15"},
		{"2024-03-15T00:00:00+02:00", "2024-03-15"},
		{"", ""},
		{"   ", ""},
		{"15/03/2024", ""},
		{"2024-3-15", ""},
		{"tomorrow", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.in))
		})
	}
}

func TestParseMultiline(t *testing.T) {
	assert.Equal(t, []string{"+33612345678", "+33698765432"}, ParseMultiline(" +33612345678 \n\n+33698765432\n  \n"))
	assert.Equal(t, []string{}, ParseMultiline(""))
	assert.Equal(t, []string{}, ParseMultiline("\n \n"))
}

func TestPageLimit(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		max     int
		want    any
		wantErr bool
	}{
		{name: "default", params: map[string]any{}, want: DefaultLimit},
		{name: "explicit", params: map[string]any{"limit": 10}, want: 10},
		{name: "float from json", params: map[string]any{"limit": float64(25)}, want: 25},
		{name: "numeric string", params: map[string]any{"limit": "7"}, want: 7},
		{name: "return all", params: map[string]any{"returnAll": true, "limit": 10}, want: nil},
		{name: "return all as string", params: map[string]any{"returnAll": "true"}, want: nil},
		{name: "zero", params: map[string]any{"limit": 0}, wantErr: true},
		{name: "above max", params: map[string]any{"limit": 501}, max: 500, wantErr: true},
		{name: "at max", params: map[string]any{"limit": 500}, max: 500, want: 500},
		{name: "not a number", params: map[string]any{"limit": "many"}, wantErr: true},
		{name: "fractional", params: map[string]any{"limit": 2.5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pageLimit(Items{tt.params}, 0, tt.max)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, []string{"limit"}, verr.Fields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathID(t *testing.T) {
	items := Items{{"contactId": " c-1 ", "phone": "+1 555/0100", "blank": "  "}}

	id, err := pathID(items, 0, "contactId", "Contact ID")
	require.NoError(t, err)
	assert.Equal(t, "c-1", id)

	id, err = pathID(items, 0, "phone", "Phone Number")
	require.NoError(t, err)
	assert.Equal(t, "%2B1%20555%2F0100", id)

	_, err = pathID(items, 0, "blank", "Blank ID")
	assert.EqualError(t, err, "Blank ID is required")

	_, err = pathID(items, 0, "missing", "Missing ID")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"missing"}, verr.Fields)
}

func TestItems_Param(t *testing.T) {
	items := Items{{"a": 1, "nil": nil}, nil}

	assert.Equal(t, 1, items.Param("a", 0, "def"))
	assert.Equal(t, "def", items.Param("nil", 0, "def"))
	assert.Equal(t, "def", items.Param("a", 1, "def"))
	assert.Equal(t, "def", items.Param("a", 5, "def"))
	assert.Equal(t, "def", items.Param("a", -1, "def"))
	assert.Equal(t, 2, items.Len())
}
