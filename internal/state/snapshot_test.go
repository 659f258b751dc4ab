package state

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const legacySnapshot = `{
  "projects": [
    {"name": "Lunch", "id": 1, "color": "red"},
    {"name": "Internal", "id": 2, "color": "#28a745"}
  ],
  "timelines": {
    "2023-04-13": [
      {"startTime": "8:10", "endTime": "12:00", "projectId": 2},
      {"startTime": "12:00", "endTime": "13:00", "projectId": 1},
      {"startTime": "13:00", "endTime": "17:00", "projectId": 1}
    ]
  }
}`

const currentSnapshot = `{
  "activities": [
    {"id": 1, "name": "Lunch", "color": "red"},
    {"id": 4, "name": "Client X", "color": "#3498DB"}
  ],
  "timelines": {
    "2023-04-13": [
      {"id": 0, "activityId": 4, "startTime": "08:10", "endTime": "12:00"},
      {"id": 1, "activityId": 1, "startTime": "12:00", "endTime": "13:00"}
    ]
  }
}`

func mustClockTime(t *testing.T, day, hhmm string) time.Time {
	t.Helper()
	at, err := ClockTime(day, hhmm)
	if err != nil {
		t.Fatalf("clock time %s %s: %v", day, hhmm, err)
	}
	return at
}

// ============================================================
// ClockTime
// ============================================================

func TestClockTime(t *testing.T) {
	tests := []struct {
		day, hhmm    string
		hour, minute int
	}{
		{"2023-04-13", "08:10", 8, 10},
		{"2023-04-13", "8:10", 8, 10},
		{"2024-12-31", "23:59", 23, 59},
		{"2024-01-01", "0:00", 0, 0},
	}
	for _, tt := range tests {
		at, err := ClockTime(tt.day, tt.hhmm)
		if err != nil {
			t.Fatalf("ClockTime(%q, %q): %v", tt.day, tt.hhmm, err)
		}
		if at.Hour() != tt.hour || at.Minute() != tt.minute {
			t.Fatalf("ClockTime(%q, %q) = %v, want %02d:%02d", tt.day, tt.hhmm, at, tt.hour, tt.minute)
		}
		if DayKey(at) != tt.day {
			t.Fatalf("day key = %q, want %q", DayKey(at), tt.day)
		}
	}
}

func TestClockTimeInvalid(t *testing.T) {
	if _, err := ClockTime("not-a-day", "08:10"); err == nil {
		t.Fatal("expected error for bad day")
	}
	if _, err := ClockTime("2023-04-13", "quarter past"); err == nil {
		t.Fatal("expected error for bad clock string")
	}
}

// ============================================================
// Decode: legacy v1 schema
// ============================================================

func TestDecodeLegacySnapshot(t *testing.T) {
	s, err := Decode([]byte(legacySnapshot))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(s.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(s.Activities))
	}
	entries := s.Timelines["2023-04-13"]
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Legacy entries have no stable id; it is synthesized from position.
	for i, e := range entries {
		if e.ID != i {
			t.Fatalf("entry %d: id = %d, want %d", i, e.ID, i)
		}
	}

	first := entries[0]
	if first.Activity.Name != "Internal" {
		t.Fatalf("first entry activity = %q, want Internal", first.Activity.Name)
	}
	if want := mustClockTime(t, "2023-04-13", "08:10"); !first.Start.Equal(want) {
		t.Fatalf("first entry start = %v, want %v", first.Start, want)
	}
	if entries[1].Minutes() != 60 {
		t.Fatalf("lunch span = %d minutes, want 60", entries[1].Minutes())
	}
}

// ============================================================
// Decode: current v2 schema
// ============================================================

func TestDecodeCurrentSnapshot(t *testing.T) {
	s, err := Decode([]byte(currentSnapshot))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	entries := s.Timelines["2023-04-13"]
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Activity.Name != "Client X" {
		t.Fatalf("activity = %q, want Client X", entries[0].Activity.Name)
	}
	if entries[1].ID != 1 {
		t.Fatalf("stored id not preserved: got %d", entries[1].ID)
	}
}

func TestDecodeMissingActivity(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		wantID   int
	}{
		{
			name: "v2 dangling reference",
			snapshot: `{"activities": [{"id": 1, "name": "Lunch", "color": "red"}],
				"timelines": {"2023-04-13": [{"id": 0, "activityId": 9, "startTime": "08:00", "endTime": "09:00"}]}}`,
			wantID: 9,
		},
		{
			name: "v1 dangling reference",
			snapshot: `{"projects": [{"id": 1, "name": "Lunch", "color": "red"}],
				"timelines": {"2023-04-13": [{"projectId": 7, "startTime": "08:00", "endTime": "09:00"}]}}`,
			wantID: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.snapshot))
			var missing *MissingActivityError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingActivityError, got %v", err)
			}
			if missing.ActivityID != tt.wantID {
				t.Fatalf("missing id = %d, want %d", missing.ActivityID, tt.wantID)
			}
			if !strings.Contains(err.Error(), "could not find activity") {
				t.Fatalf("unexpected message: %q", err.Error())
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, content := range []string{"", "not json at all", "{"} {
		if _, err := Decode([]byte(content)); err == nil {
			t.Fatalf("expected parse error for %q", content)
		}
	}
}

// ============================================================
// Encode / round trip
// ============================================================

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := Seed()
	day := "2023-04-13"
	internal, _ := s.FindActivityByName(InternalName)
	lunch, _ := s.FindActivityByName(LunchName)
	s.Timelines[day] = []Entry{
		{ID: 0, Activity: internal, Start: mustClockTime(t, day, "08:10"), End: mustClockTime(t, day, "12:00")},
		{ID: 1, Activity: lunch, Start: mustClockTime(t, day, "12:00"), End: mustClockTime(t, day, "12:45")},
	}

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(back.Activities) != len(s.Activities) {
		t.Fatalf("activities = %d, want %d", len(back.Activities), len(s.Activities))
	}
	got := back.Timelines[day]
	want := s.Timelines[day]
	if len(got) != len(want) {
		t.Fatalf("entries = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Activity != want[i].Activity {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Fatalf("entry %d times = %v..%v, want %v..%v", i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestEncodeUsesCurrentSchema(t *testing.T) {
	s := Seed()
	day := "2023-04-14"
	internal, _ := s.FindActivityByName(InternalName)
	s.Timelines[day] = []Entry{
		{ID: 0, Activity: internal, Start: mustClockTime(t, day, "08:10"), End: mustClockTime(t, day, "08:10")},
	}

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"activities"`) || !strings.Contains(text, `"activityId":3`) {
		t.Fatalf("snapshot not in v2 shape: %s", text)
	}
	if !strings.Contains(text, `"startTime":"08:10"`) {
		t.Fatalf("times not HH:mm formatted: %s", text)
	}
	if strings.Contains(text, `"projects"`) {
		t.Fatalf("legacy key leaked into snapshot: %s", text)
	}
}

func TestDays(t *testing.T) {
	s := Seed()
	s.Timelines["2023-04-14"] = nil
	s.Timelines["2023-04-12"] = nil
	s.Timelines["2023-04-13"] = nil

	days := s.Days()
	want := []string{"2023-04-12", "2023-04-13", "2023-04-14"}
	if len(days) != len(want) {
		t.Fatalf("days = %v", days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("days = %v, want %v", days, want)
		}
	}
}
