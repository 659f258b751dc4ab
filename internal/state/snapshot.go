package state

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Stored snapshot shapes. v2 is the current schema; v1 is the legacy shape
// that used "projects"/"projectId" naming and carried no per-entry id.
// Decode sniffs the version structurally: an "activities" key means v2,
// otherwise v1. New schema versions must add a case here rather than
// reinterpret existing fields.

type storedActivity struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type storedEntry struct {
	ID         int    `json:"id"`
	ActivityID int    `json:"activityId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

type storedV2 struct {
	Activities []storedActivity         `json:"activities"`
	Timelines  map[string][]storedEntry `json:"timelines"`
}

type storedV1Entry struct {
	ProjectID int    `json:"projectId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type storedV1 struct {
	Projects  []storedActivity           `json:"projects"`
	Timelines map[string][]storedV1Entry `json:"timelines"`
}

// MissingActivityError reports an entry referencing an activity id that is
// absent from the snapshot's own catalog. Imports fail whole on it.
type MissingActivityError struct {
	ActivityID int
}

func (e *MissingActivityError) Error() string {
	return fmt.Sprintf("could not find activity for id %d in state", e.ActivityID)
}

// Encode serializes s to the v2 snapshot shape.
func Encode(s *State) ([]byte, error) {
	return json.Marshal(toStored(s))
}

// EncodeIndented serializes s to the v2 snapshot shape for file export.
func EncodeIndented(s *State) ([]byte, error) {
	return json.MarshalIndent(toStored(s), "", "  ")
}

func toStored(s *State) storedV2 {
	out := storedV2{
		Activities: make([]storedActivity, 0, len(s.Activities)),
		Timelines:  make(map[string][]storedEntry, len(s.Timelines)),
	}
	for _, a := range s.Activities {
		out.Activities = append(out.Activities, storedActivity(a))
	}
	for day, entries := range s.Timelines {
		stored := make([]storedEntry, 0, len(entries))
		for _, e := range entries {
			stored = append(stored, storedEntry{
				ID:         e.ID,
				ActivityID: e.Activity.ID,
				StartTime:  e.Start.Format(ClockFormat),
				EndTime:    e.End.Format(ClockFormat),
			})
		}
		out.Timelines[day] = stored
	}
	return out
}

// Decode rehydrates a snapshot in either supported schema into a State.
// It fails whole: a parse error or a dangling activity reference rejects
// the entire snapshot.
func Decode(content []byte) (*State, error) {
	var probe struct {
		Activities json.RawMessage `json:"activities"`
	}
	if err := json.Unmarshal(content, &probe); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	if probe.Activities != nil {
		return decodeV2(content)
	}
	return decodeV1(content)
}

func decodeV2(content []byte) (*State, error) {
	var stored storedV2
	if err := json.Unmarshal(content, &stored); err != nil {
		return nil, fmt.Errorf("parse v2 snapshot: %w", err)
	}

	s := &State{Timelines: make(map[string][]Entry, len(stored.Timelines))}
	for _, a := range stored.Activities {
		s.Activities = append(s.Activities, Activity(a))
	}

	for day, storedEntries := range stored.Timelines {
		entries := make([]Entry, 0, len(storedEntries))
		for _, se := range storedEntries {
			activity, ok := s.FindActivity(se.ActivityID)
			if !ok {
				return nil, &MissingActivityError{ActivityID: se.ActivityID}
			}
			e, err := buildEntry(day, se.ID, activity, se.StartTime, se.EndTime)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		s.Timelines[day] = entries
	}
	return s, nil
}

func decodeV1(content []byte) (*State, error) {
	var stored storedV1
	if err := json.Unmarshal(content, &stored); err != nil {
		return nil, fmt.Errorf("parse v1 snapshot: %w", err)
	}

	s := &State{Timelines: make(map[string][]Entry, len(stored.Timelines))}
	for _, a := range stored.Projects {
		s.Activities = append(s.Activities, Activity(a))
	}

	for day, storedEntries := range stored.Timelines {
		entries := make([]Entry, 0, len(storedEntries))
		for i, se := range storedEntries {
			activity, ok := s.FindActivity(se.ProjectID)
			if !ok {
				return nil, &MissingActivityError{ActivityID: se.ProjectID}
			}
			// v1 entries carry no id; synthesize one from position.
			e, err := buildEntry(day, i, activity, se.StartTime, se.EndTime)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		s.Timelines[day] = entries
	}
	return s, nil
}

func buildEntry(day string, id int, activity Activity, start, end string) (Entry, error) {
	startAt, err := ClockTime(day, start)
	if err != nil {
		return Entry{}, err
	}
	endAt, err := ClockTime(day, end)
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: id, Activity: activity, Start: startAt, End: endAt}, nil
}

// Days returns the timeline keys in chronological order.
func (s *State) Days() []string {
	days := make([]string, 0, len(s.Timelines))
	for day := range s.Timelines {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
