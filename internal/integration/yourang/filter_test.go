package yourang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFilter(t *testing.T) {
	terms := []FilterTerm{
		{Key: "first_name", Value: "John"},
		{Key: "last_name", Value: "Doe"},
	}

	tests := []struct {
		name     string
		terms    []FilterTerm
		combine  Combine
		advanced string
		want     string
	}{
		{name: "and", terms: terms, combine: CombineAnd, want: "first_name:John&last_name:Doe"},
		{name: "or", terms: terms, combine: CombineOr, want: "first_name:John|last_name:Doe"},
		{name: "empty combine defaults to and", terms: terms, want: "first_name:John&last_name:Doe"},
		{
			name:     "advanced wins",
			terms:    terms,
			combine:  CombineOr,
			advanced: "  email:a@b.c|first_name:Jane  ",
			want:     "email:a@b.c|first_name:Jane",
		},
		{
			name:     "malformed advanced passes through",
			advanced: "first_name::&|",
			want:     "first_name::&|",
		},
		{name: "blank advanced ignored", terms: terms, advanced: "   ", want: "first_name:John&last_name:Doe"},
		{
			name: "skips blank values",
			terms: []FilterTerm{
				{Key: "first_name", Value: ""},
				{Key: "email", Value: nil},
				{Key: "last_name", Value: "Doe"},
			},
			want: "last_name:Doe",
		},
		{
			name:  "keeps false",
			terms: []FilterTerm{{Key: "display_name", Value: "Onboarding"}, {Key: "is_enabled", Value: false}},
			want:  "display_name:Onboarding&is_enabled:false",
		},
		{name: "no terms", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilter(tt.terms, tt.combine, tt.advanced))
		})
	}
}

func TestCombineFrom(t *testing.T) {
	assert.Equal(t, CombineOr, combineFrom("|"))
	assert.Equal(t, CombineOr, combineFrom(" | "))
	assert.Equal(t, CombineAnd, combineFrom("&"))
	assert.Equal(t, CombineAnd, combineFrom(nil))
	assert.Equal(t, CombineAnd, combineFrom("or"))
}
