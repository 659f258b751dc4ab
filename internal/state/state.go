package state

import (
	"fmt"
	"time"
)

// Reserved activity names. The seed catalog creates them, and the recorder
// resolves them by name so that imported catalogs keep working even when
// their ids differ.
const (
	LunchName    = "Lunch"
	BreakName    = "Break"
	InternalName = "Internal"
)

// DayKeyFormat is the calendar-date key used for timelines.
const DayKeyFormat = "2006-01-02"

// ClockFormat is the minute-precision wall-clock format used in snapshots.
const ClockFormat = "15:04"

// Activity is a named, colored category of time usage. Identity is ID.
type Activity struct {
	ID    int
	Name  string
	Color string
}

// Entry is one performed activity: a time span assigned to an Activity on
// one day. A zero-duration span (End == Start) marks a transition that is
// still open-ended.
type Entry struct {
	ID       int
	Activity Activity
	Start    time.Time
	End      time.Time
}

// Minutes returns the entry span in whole minutes.
func (e Entry) Minutes() int {
	return int(e.End.Sub(e.Start).Minutes())
}

// State is the root aggregate: the activity catalog plus one timeline per
// calendar day. Timelines hold entries in insertion order; the last entry
// of a day is the currently active one.
type State struct {
	Activities []Activity
	Timelines  map[string][]Entry
}

// Seed returns the default state for a fresh install.
func Seed() *State {
	return &State{
		Activities: []Activity{
			{ID: 1, Name: LunchName, Color: "red"},
			{ID: 2, Name: BreakName, Color: "orange"},
			{ID: 3, Name: InternalName, Color: "#28a745"},
		},
		Timelines: map[string][]Entry{},
	}
}

// FindActivity looks an activity up by id in the catalog.
func (s *State) FindActivity(id int) (Activity, bool) {
	for _, a := range s.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}

// FindActivityByName looks an activity up by name in the catalog.
func (s *State) FindActivityByName(name string) (Activity, bool) {
	for _, a := range s.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}

// DayKey formats t as a timeline key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// ClockTime combines a day key and an HH:mm string into a concrete time.
// Accepts hours without a leading zero ("8:10"), which older snapshots use.
func ClockTime(day, hhmm string) (time.Time, error) {
	d, err := time.ParseInLocation(DayKeyFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	c, err := time.Parse(ClockFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", hhmm, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}
