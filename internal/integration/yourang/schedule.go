package yourang

import (
	"strings"
)

// OpenAllDay is the single range of a day that is open around the clock.
const OpenAllDay = "00:00 - 23:59"

// Schedule modes.
const (
	ModeHours  = "hours"
	ModeOpen   = "open"
	ModeClosed = "closed"
)

// Schedule maps a weekday to its time ranges. An empty list means closed.
type Schedule map[string][]string

// ScheduleEntry is one row of a schedule collection.
type ScheduleEntry struct {
	Day    string
	Mode   string
	Ranges string
}

// DestinationEntry is one row of a phone destination collection.
type DestinationEntry struct {
	Name           string
	PhoneNumber    string
	Description    string
	AvailableHours []ScheduleEntry
}

// Destination is a transfer target as the API expects it.
type Destination struct {
	Name           string   `json:"name"`
	PhoneNumber    string   `json:"phone_number"`
	Description    string   `json:"description"`
	AvailableHours Schedule `json:"available_hours,omitempty"`
}

// TransformSchedule converts schedule rows into a Schedule.
//
// "open" maps the day to OpenAllDay, "closed" to no ranges, and "hours"
// (the default) to the comma separated ranges with blanks dropped. Rows
// without a day, "hours" rows without ranges and rows with an unknown mode
// are skipped. A later row for the same day replaces an earlier one.
func TransformSchedule(entries []ScheduleEntry) Schedule {
	out := Schedule{}
	for _, e := range entries {
		day := strings.TrimSpace(e.Day)
		if day == "" {
			continue
		}

		mode := strings.TrimSpace(e.Mode)
		if mode == "" {
			mode = ModeHours
		}

		switch mode {
		case ModeOpen:
			out[day] = []string{OpenAllDay}
		case ModeClosed:
			out[day] = []string{}
		case ModeHours:
			if strings.TrimSpace(e.Ranges) == "" {
				continue
			}
			ranges := []string{}
			for _, r := range strings.Split(e.Ranges, ",") {
				if r = strings.TrimSpace(r); r != "" {
					ranges = append(ranges, r)
				}
			}
			out[day] = ranges
		}
	}
	return out
}

// TransformDestinations converts destination rows, preserving order. A
// nested schedule is attached as available_hours when it has any day.
func TransformDestinations(entries []DestinationEntry) []Destination {
	out := make([]Destination, 0, len(entries))
	for _, e := range entries {
		d := Destination{
			Name:        e.Name,
			PhoneNumber: e.PhoneNumber,
			Description: e.Description,
		}
		if len(e.AvailableHours) > 0 {
			if hours := TransformSchedule(e.AvailableHours); len(hours) > 0 {
				d.AvailableHours = hours
			}
		}
		out = append(out, d)
	}
	return out
}

// scheduleRows decodes the rows of a fixed collection such as
// {"scheduleValues": [{"day": "monday", "ranges": "09:00 - 18:00"}]}.
func scheduleRows(collection any) []ScheduleEntry {
	rows := asSlice(asMap(collection)["scheduleValues"])
	out := make([]ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		m := asMap(row)
		out = append(out, ScheduleEntry{
			Day:    toString(m["day"]),
			Mode:   toString(m["mode"]),
			Ranges: toString(m["ranges"]),
		})
	}
	return out
}

// destinationRows decodes {"destinationValues": [...]} rows, including each
// row's nested available_hours_ui collection.
func destinationRows(collection any) []DestinationEntry {
	rows := asSlice(asMap(collection)["destinationValues"])
	out := make([]DestinationEntry, 0, len(rows))
	for _, row := range rows {
		m := asMap(row)
		out = append(out, DestinationEntry{
			Name:           toString(m["name"]),
			PhoneNumber:    toString(m["phone_number"]),
			Description:    toString(m["description"]),
			AvailableHours: scheduleRows(m["available_hours_ui"]),
		})
	}
	return out
}
