package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tydligtid/tydlig/internal/recorder"
	"github.com/tydligtid/tydlig/internal/state"
)

type dashboardModel struct {
	rec    *recorder.Recorder
	width  int
	height int

	started  bool
	summary  recorder.TodaySummary
	worked   float64
	entries  []state.Entry
	projects []state.Activity

	formActive bool
	form       *huh.Form
	formType   string // "start", "switch", "lunchlen", "breakend", "daystart"

	// Form field pointers (survive value copies)
	formActivityID *int
	formTime       *string
	formMinutes    *string
}

func newDashboardModel(rec *recorder.Recorder) dashboardModel {
	activityID, clock, minutes := 0, "", ""
	return dashboardModel{
		rec:            rec,
		formActivityID: &activityID,
		formTime:       &clock,
		formMinutes:    &minutes,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	started  bool
	summary  recorder.TodaySummary
	worked   float64
	entries  []state.Entry
	projects []state.Activity
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		summary, started := d.rec.Today()
		view, _ := d.rec.TimelineForToday()
		return dashboardDataMsg{
			started:  started,
			summary:  summary,
			worked:   d.rec.WorkedHours(time.Now()),
			entries:  view.Entries,
			projects: d.rec.AvailableProjects(),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.started = msg.started
		d.summary = msg.summary
		d.worked = msg.worked
		d.entries = msg.entries
		d.projects = msg.projects
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if d.started {
				return d, statusCmd("Day already started", true)
			}
			return d.showStartForm()

		case key.Matches(msg, keys.Switch):
			if !d.started {
				return d, statusCmd("Start the day first (s)", true)
			}
			return d.showSwitchForm()

		case key.Matches(msg, keys.Lunch):
			return d.apply(d.rec.AddLunch(time.Now()))("Lunch started", "Start the day first (s)")

		case key.Matches(msg, keys.LunchLen):
			if !d.started {
				return d, statusCmd("Start the day first (s)", true)
			}
			return d.showLunchLenForm()

		case key.Matches(msg, keys.Break):
			return d.apply(d.rec.AddBreak(time.Now()))("Break started", "Start the day first (s)")

		case key.Matches(msg, keys.BreakEnd):
			if !d.started {
				return d, statusCmd("Start the day first (s)", true)
			}
			return d.showBreakEndForm()

		case key.Matches(msg, keys.DayStart):
			if !d.started {
				return d, statusCmd("Start the day first (s)", true)
			}
			return d.showDayStartForm()
		}
	}
	return d, nil
}

// apply turns a recorder mutation result into the matching status command.
func (d dashboardModel) apply(applied bool, err error) func(okText, noopText string) (dashboardModel, tea.Cmd) {
	return func(okText, noopText string) (dashboardModel, tea.Cmd) {
		if err != nil {
			return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		if !applied {
			return d, statusCmd(noopText, true)
		}
		return d, func() tea.Msg { return stateChangedMsg{note: okText} }
	}
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

func (d dashboardModel) activityOptions() []huh.Option[int] {
	options := make([]huh.Option[int], len(d.projects))
	for i, a := range d.projects {
		options[i] = huh.NewOption(a.Name, a.ID)
	}
	return options
}

func (d dashboardModel) showStartForm() (dashboardModel, tea.Cmd) {
	if len(d.projects) == 0 {
		return d, statusCmd("No activities yet. Press 3 to go to Activities and create one.", true)
	}
	*d.formActivityID = d.projects[0].ID
	*d.formTime = formatClock(time.Now())
	d.formType = "start"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Activity").Options(d.activityOptions()...).Value(d.formActivityID),
			huh.NewInput().Title("Start Time (HH:mm)").Value(d.formTime).Validate(validateClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showSwitchForm() (dashboardModel, tea.Cmd) {
	if len(d.projects) == 0 {
		return d, statusCmd("No activities yet. Press 3 to go to Activities and create one.", true)
	}
	*d.formActivityID = d.projects[0].ID
	d.formType = "switch"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Switch To").Options(d.activityOptions()...).Value(d.formActivityID),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showLunchLenForm() (dashboardModel, tea.Cmd) {
	*d.formMinutes = strconv.Itoa(d.summary.LunchMinutes)
	d.formType = "lunchlen"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Lunch Length (minutes)").Value(d.formMinutes).Validate(validateMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showBreakEndForm() (dashboardModel, tea.Cmd) {
	*d.formMinutes = "15"
	d.formType = "breakend"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Break Length (minutes)").Value(d.formMinutes).Validate(validateMinutes),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showDayStartForm() (dashboardModel, tea.Cmd) {
	*d.formTime = formatClock(d.summary.StartTime)
	d.formType = "daystart"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Day Start (HH:mm)").Value(d.formTime).Validate(validateClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func validateClock(s string) error {
	_, err := state.ClockTime(state.DayKey(time.Now()), s)
	if err != nil {
		return fmt.Errorf("want HH:mm")
	}
	return nil
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("want a number of minutes")
	}
	return nil
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		return d.submitForm()
	}

	return d, cmd
}

func (d dashboardModel) submitForm() (dashboardModel, tea.Cmd) {
	switch d.formType {
	case "start":
		at, err := state.ClockTime(state.DayKey(time.Now()), *d.formTime)
		if err != nil {
			return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return d.apply(d.rec.StartDay(*d.formActivityID, at))("Day started", "Day already started")

	case "switch":
		return d.apply(d.rec.ChangeProject(*d.formActivityID, time.Now()))("Switched", "Start the day first (s)")

	case "lunchlen":
		minutes, _ := strconv.Atoi(*d.formMinutes)
		return d.apply(d.rec.UpdateLunch(minutes))("Lunch updated", "No lunch recorded today yet (l)")

	case "breakend":
		minutes, _ := strconv.Atoi(*d.formMinutes)
		return d.apply(d.rec.EndBreak(minutes))("Break ended", "Start the day first (s)")

	case "daystart":
		at, err := state.ClockTime(state.DayKey(time.Now()), *d.formTime)
		if err != nil {
			return d, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return d.apply(d.rec.ChangeStartTime(at))("Start time updated", "Start the day first (s)")
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render(d.formTitle())
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View())
		return activePanelStyle.Width(contentWidth).Render(content)
	}

	dayPanel := d.renderDayPanel(contentWidth)
	entriesPanel := d.renderEntriesPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, dayPanel, entriesPanel)
}

func (d dashboardModel) formTitle() string {
	switch d.formType {
	case "start":
		return "Start Day"
	case "switch":
		return "Switch Project"
	case "lunchlen":
		return "Lunch Length"
	case "breakend":
		return "End Break"
	case "daystart":
		return "Fix Start Time"
	}
	return ""
}

func (d dashboardModel) renderDayPanel(w int) string {
	if !d.started {
		content := lipgloss.JoinVertical(lipgloss.Center,
			clockIdleStyle.Width(w-6).Render("—"),
			mutedStyle.Render("No day in progress"),
			mutedStyle.Render("Press s to start your day"),
		)
		return panelStyle.Width(w).Render(content)
	}

	worked := clockStyle.Width(w - 6).Render(formatWorked(d.worked))
	current := highlightStyle.Render(d.summary.CurrentProject.Name)

	facts := fmt.Sprintf("%s started  ·  %s lunch",
		formatClock(d.summary.StartTime),
		formatMinutes(d.summary.LunchMinutes),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		worked,
		current,
		mutedStyle.Render(facts),
	)
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderEntriesPanel(w int) string {
	title := titleStyle.Render("Today")
	if len(d.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for i, e := range d.entries {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Activity.Color)).Render("●")
		span := fmt.Sprintf("%s – %s", formatClock(e.Start), formatClock(e.End))
		marker := " "
		if i == len(d.entries)-1 {
			marker = successStyle.Render("●")
		}
		row := fmt.Sprintf("  %s %s  %s %-16s %s",
			marker, span, colorDot, e.Activity.Name, mutedStyle.Render(formatMinutes(e.Minutes())),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
