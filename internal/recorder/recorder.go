// Package recorder owns the workday state: it is the only writer of the
// state aggregate and persists the whole snapshot after every mutation.
//
// Mutations follow a two-tier result convention: the bool reports whether
// the call applied (false is a silent precondition no-op, expected from
// normal UI sequencing), while the error carries only storage failures.
// Loading and importing are the opposite tier: corrupted data fails hard.
package recorder

import (
	"fmt"
	"time"

	"github.com/tydligtid/tydlig/internal/state"
	"github.com/tydligtid/tydlig/internal/storage"
)

// StateKey is the fixed storage key the snapshot lives under.
const StateKey = "TYDLIG_TID_STATE"

// DefaultBeforeLunchWindow is the nominal span the before-lunch timeline
// axis is scaled against.
const DefaultBeforeLunchWindow = 4 * time.Hour

// Clock supplies the current time. Injected so tests can pin the day.
type Clock func() time.Time

type Recorder struct {
	storage storage.Storage
	clock   Clock
	window  time.Duration

	state *state.State
}

// New loads the recorder from store, seeding a fresh state when no
// snapshot exists yet. A snapshot that fails to decode is a hard error.
func New(store storage.Storage, clock Clock) (*Recorder, error) {
	return NewWithWindow(store, clock, DefaultBeforeLunchWindow)
}

// NewWithWindow is New with a custom before-lunch axis window.
func NewWithWindow(store storage.Storage, clock Clock, window time.Duration) (*Recorder, error) {
	if clock == nil {
		clock = time.Now
	}
	r := &Recorder{storage: store, clock: clock, window: window}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) load() error {
	stored, ok, err := r.storage.Get(StateKey)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if !ok {
		r.state = state.Seed()
		return nil
	}

	s, err := state.Decode([]byte(stored))
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	r.state = s
	return nil
}

func (r *Recorder) save() error {
	data, err := state.Encode(r.state)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := r.storage.Set(StateKey, string(data)); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (r *Recorder) todayKey() string {
	return state.DayKey(r.clock())
}

// todayTimeline returns today's entries. The last entry is the current one;
// there is no stored pointer, it is re-derived on every lookup.
func (r *Recorder) todayTimeline() []state.Entry {
	return r.state.Timelines[r.todayKey()]
}

func nextEntryID(timeline []state.Entry) int {
	next := 0
	for _, e := range timeline {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next
}

// StartDay opens today's timeline with a single zero-span entry for the
// given activity. No-op when today already has entries or the activity id
// is unknown.
func (r *Recorder) StartDay(activityID int, at time.Time) (bool, error) {
	day := r.todayKey()
	if len(r.state.Timelines[day]) > 0 {
		return false, nil
	}
	activity, ok := r.state.FindActivity(activityID)
	if !ok {
		return false, nil
	}

	r.state.Timelines[day] = []state.Entry{{ID: 0, Activity: activity, Start: at, End: at}}
	return true, r.save()
}

// ChangeStartTime corrects a mis-recorded day start by moving the first
// entry's start only.
func (r *Recorder) ChangeStartTime(at time.Time) (bool, error) {
	day := r.todayKey()
	timeline := r.state.Timelines[day]
	if len(timeline) == 0 {
		return false, nil
	}

	r.state.Timelines[day][0].Start = at
	return true, r.save()
}

// UpdateCurrentProject is the periodic tick: it advances the current
// entry's end to now, keeping the open-ended entry accurate without
// creating new entries.
func (r *Recorder) UpdateCurrentProject(now time.Time) (bool, error) {
	day := r.todayKey()
	timeline := r.state.Timelines[day]
	if len(timeline) == 0 {
		return false, nil
	}

	r.state.Timelines[day][len(timeline)-1].End = now
	return true, r.save()
}

// ChangeProject closes the current entry at the given instant and opens a
// new one for the activity. The boundary time is shared between the two
// entries, so the chain stays contiguous.
func (r *Recorder) ChangeProject(activityID int, at time.Time) (bool, error) {
	activity, ok := r.state.FindActivity(activityID)
	if !ok {
		return false, nil
	}
	day := r.todayKey()
	timeline := r.state.Timelines[day]
	if len(timeline) == 0 {
		return false, nil
	}

	timeline[len(timeline)-1].End = at
	timeline = append(timeline, state.Entry{ID: nextEntryID(timeline), Activity: activity, Start: at, End: at})
	r.state.Timelines[day] = timeline
	return true, r.save()
}

// AddLunch switches the current activity to the reserved Lunch activity.
func (r *Recorder) AddLunch(at time.Time) (bool, error) {
	lunch, ok := r.state.FindActivityByName(state.LunchName)
	if !ok {
		return false, nil
	}
	return r.ChangeProject(lunch.ID, at)
}

// AddBreak switches the current activity to the reserved Break activity.
func (r *Recorder) AddBreak(at time.Time) (bool, error) {
	brk, ok := r.state.FindActivityByName(state.BreakName)
	if !ok {
		return false, nil
	}
	return r.ChangeProject(brk.ID, at)
}

// EndBreak records the end of a break of the given length and resumes the
// activity that ran before it. When the break was opened live via AddBreak
// it is closed in place; otherwise the whole break span is reconstructed
// backwards from now, the only moment the caller knows its duration.
func (r *Recorder) EndBreak(durationMinutes int) (bool, error) {
	brk, ok := r.state.FindActivityByName(state.BreakName)
	if !ok {
		return false, nil
	}
	day := r.todayKey()
	timeline := r.state.Timelines[day]
	if len(timeline) == 0 {
		return false, nil
	}

	now := r.clock()
	current := timeline[len(timeline)-1]

	if current.Activity.ID == brk.ID {
		if len(timeline) < 2 {
			return false, nil
		}
		prior := timeline[len(timeline)-2].Activity
		timeline[len(timeline)-1].End = now
		timeline = append(timeline, state.Entry{ID: nextEntryID(timeline), Activity: prior, Start: now, End: now})
		r.state.Timelines[day] = timeline
		return true, r.save()
	}

	breakStart := now.Add(-time.Duration(durationMinutes) * time.Minute)
	prior := current.Activity
	timeline[len(timeline)-1].End = breakStart
	timeline = append(timeline,
		state.Entry{ID: nextEntryID(timeline), Activity: brk, Start: breakStart, End: now})
	timeline = append(timeline,
		state.Entry{ID: nextEntryID(timeline), Activity: prior, Start: now, End: now})
	r.state.Timelines[day] = timeline
	return true, r.save()
}

// UpdateLunch sets today's lunch span to exactly the given number of
// minutes and shifts the following entry's start to keep the chain
// contiguous. No other entry changes.
func (r *Recorder) UpdateLunch(minutes int) (bool, error) {
	day := r.todayKey()
	timeline := r.state.Timelines[day]

	// Index 0 is a valid position for the lunch entry; use an explicit
	// found flag rather than a zero check.
	idx, found := -1, false
	for i, e := range timeline {
		if e.Activity.Name == state.LunchName {
			idx, found = i, true
			break
		}
	}
	if !found {
		return false, nil
	}

	end := timeline[idx].Start.Add(time.Duration(minutes) * time.Minute)
	timeline[idx].End = end
	if idx+1 < len(timeline) {
		timeline[idx+1].Start = end
	}
	return true, r.save()
}

// Record appends an entry to today's timeline, creating the day if needed.
// The entry id is reassigned to keep ids unique within the day.
func (r *Recorder) Record(e state.Entry) (bool, error) {
	if _, ok := r.state.FindActivity(e.Activity.ID); !ok {
		return false, nil
	}
	day := r.todayKey()
	timeline := r.state.Timelines[day]

	e.ID = nextEntryID(timeline)
	r.state.Timelines[day] = append(timeline, e)
	return true, r.save()
}

// ReplaceRecordsForDay swaps out today's whole timeline, the entry point
// for edited-activity flows. Edits cannot create a day: no-op when no
// timeline exists yet.
func (r *Recorder) ReplaceRecordsForDay(entries []state.Entry) (bool, error) {
	day := r.todayKey()
	if _, ok := r.state.Timelines[day]; !ok {
		return false, nil
	}

	r.state.Timelines[day] = entries
	return true, r.save()
}

// Activities returns the full catalog.
func (r *Recorder) Activities() []state.Activity {
	out := make([]state.Activity, len(r.state.Activities))
	copy(out, r.state.Activities)
	return out
}

// AvailableProjects returns the catalog without the reserved Lunch and
// Break activities, the set offered by the project picker.
func (r *Recorder) AvailableProjects() []state.Activity {
	var out []state.Activity
	for _, a := range r.state.Activities {
		if a.Name == state.LunchName || a.Name == state.BreakName {
			continue
		}
		out = append(out, a)
	}
	return out
}

// AddActivity adds a new activity to the catalog with the next free id.
func (r *Recorder) AddActivity(name, color string) (state.Activity, error) {
	id := 0
	for _, a := range r.state.Activities {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	activity := state.Activity{ID: id, Name: name, Color: color}
	r.state.Activities = append(r.state.Activities, activity)
	return activity, r.save()
}

// Export serializes the full state as an indented snapshot document.
func (r *Recorder) Export() ([]byte, error) {
	return state.EncodeIndented(r.state)
}

// ImportFromFile replaces the state wholesale with the decoded snapshot.
// Decode failures (malformed JSON, dangling activity references) reject
// the import and leave the in-memory state untouched.
func (r *Recorder) ImportFromFile(content []byte) error {
	s, err := state.Decode(content)
	if err != nil {
		return fmt.Errorf("import state: %w", err)
	}

	r.state = s
	return r.save()
}

// Snapshot exposes the state aggregate to read-only consumers such as the
// export formatters. Callers must not mutate it.
func (r *Recorder) Snapshot() *state.State {
	return r.state
}
