package yourang

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformSchedule(t *testing.T) {
	tests := []struct {
		name    string
		entries []ScheduleEntry
		want    Schedule
	}{
		{
			name:    "hours split and trimmed",
			entries: []ScheduleEntry{{Day: "monday", Ranges: "09:00-12:00, 14:00-18:00"}},
			want:    Schedule{"monday": {"09:00-12:00", "14:00-18:00"}},
		},
		{
			name:    "empty ranges dropped",
			entries: []ScheduleEntry{{Day: "monday", Mode: ModeHours, Ranges: "09:00-12:00,, ,"}},
			want:    Schedule{"monday": {"09:00-12:00"}},
		},
		{
			name:    "open",
			entries: []ScheduleEntry{{Day: "saturday", Mode: ModeOpen}},
			want:    Schedule{"saturday": {OpenAllDay}},
		},
		{
			name:    "closed",
			entries: []ScheduleEntry{{Day: "sunday", Mode: ModeClosed, Ranges: "09:00-12:00"}},
			want:    Schedule{"sunday": {}},
		},
		{
			name:    "no day skipped",
			entries: []ScheduleEntry{{Mode: ModeOpen}, {Day: "friday", Ranges: "10:00-11:00"}},
			want:    Schedule{"friday": {"10:00-11:00"}},
		},
		{
			name:    "hours without ranges skipped",
			entries: []ScheduleEntry{{Day: "monday", Mode: ModeHours}},
			want:    Schedule{},
		},
		{
			name:    "unknown mode skipped",
			entries: []ScheduleEntry{{Day: "monday", Mode: "sometimes", Ranges: "09:00-10:00"}},
			want:    Schedule{},
		},
		{
			name: "last entry for a day wins",
			entries: []ScheduleEntry{
				{Day: "monday", Ranges: "09:00-10:00"},
				{Day: "monday", Mode: ModeClosed},
			},
			want: Schedule{"monday": {}},
		},
		{name: "empty", want: Schedule{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransformSchedule(tt.entries))
		})
	}
}

func TestTransformSchedule_ClosedEncodesAsEmptyList(t *testing.T) {
	b, err := json.Marshal(TransformSchedule([]ScheduleEntry{{Day: "sunday", Mode: ModeClosed}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sunday":[]}`, string(b))
}

func TestTransformDestinations(t *testing.T) {
	got := TransformDestinations([]DestinationEntry{
		{
			Name:        "Sales",
			PhoneNumber: "+33123456789",
			Description: "Sales team",
			AvailableHours: []ScheduleEntry{
				{Day: "monday", Ranges: "09:00 - 18:00"},
			},
		},
		{Name: "Support", PhoneNumber: "+33987654321"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Sales", got[0].Name)
	assert.Equal(t, Schedule{"monday": {"09:00 - 18:00"}}, got[0].AvailableHours)
	assert.Nil(t, got[1].AvailableHours)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"Sales","phone_number":"+33123456789","description":"Sales team","available_hours":{"monday":["09:00 - 18:00"]}},
		{"name":"Support","phone_number":"+33987654321","description":""}
	]`, string(b))
}

func TestTransformDestinations_Empty(t *testing.T) {
	assert.Equal(t, []Destination{}, TransformDestinations(nil))
}

func TestScheduleRows(t *testing.T) {
	rows := scheduleRows(map[string]any{
		"scheduleValues": []any{
			map[string]any{"day": "monday", "ranges": "09:00 - 18:00"},
			map[string]any{"day": "sunday", "mode": "closed"},
		},
	})

	assert.Equal(t, []ScheduleEntry{
		{Day: "monday", Ranges: "09:00 - 18:00"},
		{Day: "sunday", Mode: "closed"},
	}, rows)
	assert.Empty(t, scheduleRows(nil))
	assert.Empty(t, scheduleRows(map[string]any{}))
}

func TestDestinationRows(t *testing.T) {
	rows := destinationRows(map[string]any{
		"destinationValues": []any{
			map[string]any{
				"name":         "Sales",
				"phone_number": "+331",
				"available_hours_ui": map[string]any{
					"scheduleValues": []any{map[string]any{"day": "friday", "mode": "open"}},
				},
			},
		},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "Sales", rows[0].Name)
	assert.Equal(t, "", rows[0].Description)
	assert.Equal(t, []ScheduleEntry{{Day: "friday", Mode: "open"}}, rows[0].AvailableHours)
}
