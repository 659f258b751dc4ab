package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/tydligtid/tydlig/internal/state"
)

func sampleState(t *testing.T) *state.State {
	t.Helper()
	s := state.Seed()
	internal, _ := s.FindActivityByName(state.InternalName)
	lunch, _ := s.FindActivityByName(state.LunchName)

	entry := func(day, start, end string, a state.Activity, id int) state.Entry {
		startAt, err := state.ClockTime(day, start)
		if err != nil {
			t.Fatal(err)
		}
		endAt, err := state.ClockTime(day, end)
		if err != nil {
			t.Fatal(err)
		}
		return state.Entry{ID: id, Activity: a, Start: startAt, End: endAt}
	}

	s.Timelines["2023-04-14"] = []state.Entry{
		entry("2023-04-14", "08:00", "09:30", internal, 0),
	}
	s.Timelines["2023-04-13"] = []state.Entry{
		entry("2023-04-13", "08:10", "12:00", internal, 0),
		entry("2023-04-13", "12:00", "13:00", lunch, 1),
	}
	return s
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	s := sampleState(t)
	path := filepath.Join(t.TempDir(), DefaultJSONName)

	if err := ToJSON(s, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// The export must round-trip through the importer.
	back, err := state.Decode(data)
	if err != nil {
		t.Fatalf("decode exported file: %v", err)
	}
	if len(back.Activities) != 3 {
		t.Fatalf("activities = %d, want 3", len(back.Activities))
	}
	if len(back.Timelines["2023-04-13"]) != 2 {
		t.Fatalf("entries = %d, want 2", len(back.Timelines["2023-04-13"]))
	}
	if back.Timelines["2023-04-13"][1].Minutes() != 60 {
		t.Fatalf("lunch span = %d", back.Timelines["2023-04-13"][1].Minutes())
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(state.Seed(), filepath.Join("/nonexistent", "dir", DefaultJSONName)); err == nil {
		t.Fatal("expected error for bad path")
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	s := sampleState(t)
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(s, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Date", "Activity", "Start", "End", "Minutes"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Days come out in chronological order.
	if records[1][0] != "2023-04-13" {
		t.Fatalf("first data row day = %q, want 2023-04-13", records[1][0])
	}
	if records[3][0] != "2023-04-14" {
		t.Fatalf("last data row day = %q, want 2023-04-14", records[3][0])
	}

	row := records[1]
	if row[1] != "Internal" || row[2] != "08:10" || row[3] != "12:00" || row[4] != "230" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(state.Seed(), path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(state.Seed(), "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVZeroSpanEntry(t *testing.T) {
	s := state.Seed()
	internal, _ := s.FindActivityByName(state.InternalName)
	at, err := state.ClockTime("2023-04-14", "08:10")
	if err != nil {
		t.Fatal(err)
	}
	s.Timelines["2023-04-14"] = []state.Entry{
		{ID: 0, Activity: internal, Start: at, End: at},
	}
	path := filepath.Join(t.TempDir(), "zero.csv")

	if err := ToCSV(s, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if records[1][4] != "0" {
		t.Fatalf("zero-span minutes = %q, want 0", records[1][4])
	}
}
