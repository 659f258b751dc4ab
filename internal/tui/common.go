package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTimeline
	viewActivities
)

var viewNames = []string{"Dashboard", "Timeline", "Activities"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// stateChangedMsg tells the app a mutation went through and the views
// should reload their projections.
type stateChangedMsg struct {
	note string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(t time.Time) string {
	return t.Format("15:04")
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%d min", m)
}

func formatWorked(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}
