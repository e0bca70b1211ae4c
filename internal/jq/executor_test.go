package jq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	items := []any{
		map[string]any{"id": "c1", "first_name": "Ada", "tags": []string{"vip"}},
		map[string]any{"id": "c2", "first_name": "Grace"},
	}

	tests := []struct {
		name       string
		expression string
		data       any
		want       any
		wantErr    string
	}{
		{
			name: "empty expression returns data as-is",
			data: items,
			want: items,
		},
		{
			name:       "field of every item",
			expression: "map(.first_name)",
			data:       items,
			want:       []any{"Ada", "Grace"},
		},
		{
			name:       "typed slices are normalized",
			expression: ".[0].tags[0]",
			data:       items,
			want:       "vip",
		},
		{
			name:       "multiple results become a slice",
			expression: ".[].id",
			data:       items,
			want:       []any{"c1", "c2"},
		},
		{
			name:       "no result",
			expression: "empty",
			data:       items,
			want:       nil,
		},
		{
			name:       "invalid expression",
			expression: ".[",
			data:       items,
			wantErr:    "invalid jq expression",
		},
		{
			name:       "runtime error",
			expression: ".first_name",
			data:       items,
			wantErr:    "expected an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Execute(context.Background(), tt.expression, tt.data)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_MaxInputSize(t *testing.T) {
	q, err := Compile(".", 0, 8)
	require.NoError(t, err)
	assert.Equal(t, ".", q.String())

	_, err = q.Run(context.Background(), map[string]any{"first_name": "Ada"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestQuery_CancelledContext(t *testing.T) {
	q, err := Compile("[range(100000000)] | length", 0, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = q.Run(ctx, nil)
	require.Error(t, err)
}
