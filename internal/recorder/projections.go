package recorder

import (
	"math"
	"time"

	"github.com/tydligtid/tydlig/internal/state"
)

// TodaySummary is the read-only projection backing the day header:
// when the day started, how long lunch was, and what is running now.
type TodaySummary struct {
	StartTime      time.Time
	LunchMinutes   int
	CurrentProject state.Activity
}

// Segment is one timeline bar: an entry reduced to its share of its
// partition's axis.
type Segment struct {
	Name       string
	Color      string
	Percentage float64
}

// TimelineView is the rendering projection for today: the decorated entry
// list, a name→color legend, and the entries partitioned around lunch and
// expressed as axis percentages.
type TimelineView struct {
	Entries     []state.Entry
	Legend      map[string]string
	BeforeLunch []Segment
	AfterLunch  []Segment
}

// Today summarizes today's timeline. ok is false when no day has been
// started yet.
func (r *Recorder) Today() (TodaySummary, bool) {
	timeline := r.todayTimeline()
	if len(timeline) == 0 {
		return TodaySummary{}, false
	}

	summary := TodaySummary{
		StartTime:      timeline[0].Start,
		CurrentProject: timeline[len(timeline)-1].Activity,
	}
	if idx, found := lunchIndex(timeline); found {
		summary.LunchMinutes = timeline[idx].Minutes()
	}
	return summary, true
}

// WorkedHours returns the hours worked so far: elapsed time since the day
// start minus lunch, rounded to one decimal.
func (r *Recorder) WorkedHours(now time.Time) float64 {
	summary, ok := r.Today()
	if !ok {
		return 0
	}
	minutes := now.Sub(summary.StartTime).Minutes() - float64(summary.LunchMinutes)
	return math.Round(minutes/60*10) / 10
}

// TimelineForToday builds the rendering projection. The lunch entry is the
// divider between the two partitions and belongs to neither. Before-lunch
// percentages are scaled against the fixed nominal window so that axis
// stays visually stable over the morning; after-lunch percentages are
// scaled against the partition's own summed duration so that axis always
// fills. The asymmetry is intentional.
func (r *Recorder) TimelineForToday() (TimelineView, bool) {
	timeline := r.todayTimeline()
	if len(timeline) == 0 {
		return TimelineView{}, false
	}

	view := TimelineView{
		Entries: append([]state.Entry(nil), timeline...),
		Legend:  make(map[string]string),
	}
	for _, e := range timeline {
		view.Legend[e.Activity.Name] = e.Activity.Color
	}

	var before, after []state.Entry
	if idx, found := lunchIndex(timeline); found {
		lunchStart := timeline[idx].Start
		for i, e := range timeline {
			if i == idx {
				continue
			}
			if e.Start.Before(lunchStart) {
				before = append(before, e)
			} else {
				after = append(after, e)
			}
		}
	} else {
		before = timeline
	}

	for _, e := range before {
		view.BeforeLunch = append(view.BeforeLunch, Segment{
			Name:       e.Activity.Name,
			Color:      e.Activity.Color,
			Percentage: percentage(e.End.Sub(e.Start), r.window),
		})
	}

	var afterTotal time.Duration
	for _, e := range after {
		afterTotal += e.End.Sub(e.Start)
	}
	for _, e := range after {
		view.AfterLunch = append(view.AfterLunch, Segment{
			Name:       e.Activity.Name,
			Color:      e.Activity.Color,
			Percentage: percentage(e.End.Sub(e.Start), afterTotal),
		})
	}

	return view, true
}

func lunchIndex(timeline []state.Entry) (int, bool) {
	for i, e := range timeline {
		if e.Activity.Name == state.LunchName {
			return i, true
		}
	}
	return -1, false
}

func percentage(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
