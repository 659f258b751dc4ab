package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tydligtid/tydlig/internal/recorder"
	"github.com/tydligtid/tydlig/internal/state"
)

var activityColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type activitiesModel struct {
	rec    *recorder.Recorder
	width  int
	height int

	activities []state.Activity
	cursor     int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string
}

func newActivitiesModel(rec *recorder.Recorder) activitiesModel {
	name, color := "", activityColors[0]
	return activitiesModel{
		rec:       rec,
		formName:  &name,
		formColor: &color,
	}
}

func (m *activitiesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type activitiesDataMsg struct {
	activities []state.Activity
}

func (m activitiesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return activitiesDataMsg{activities: m.rec.Activities()}
	}
}

func (m activitiesModel) update(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case activitiesDataMsg:
		m.activities = msg.activities
		if m.cursor >= len(m.activities) {
			m.cursor = max(0, len(m.activities)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.activities)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.activities) == 0 {
				return m, nil
			}
			a := m.activities[m.cursor]
			applied, err := m.rec.ChangeProject(a.ID, time.Now())
			if err != nil {
				return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			if !applied {
				return m, statusCmd("Start the day first (s)", true)
			}
			return m, func() tea.Msg { return stateChangedMsg{note: "Switched to " + a.Name} }
		case key.Matches(msg, keys.New):
			return m.showNewForm()
		}
	}
	return m, nil
}

func (m activitiesModel) showNewForm() (activitiesModel, tea.Cmd) {
	*m.formName = ""
	*m.formColor = activityColors[0]

	colorOptions := make([]huh.Option[string], len(activityColors))
	for i, c := range activityColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Activity Name").Value(m.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m activitiesModel) updateForm(msg tea.Msg) (activitiesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		if *m.formName == "" {
			return m, m.refresh()
		}
		if _, err := m.rec.AddActivity(*m.formName, *m.formColor); err != nil {
			return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return m, func() tea.Msg { return stateChangedMsg{note: "Added " + *m.formName} }
	}

	return m, cmd
}

func (m activitiesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Activity")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Activities")

	if len(m.activities) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No activities yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, a := range m.activities {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		label := a.Name
		if a.Name == state.LunchName || a.Name == state.BreakName {
			label += mutedStyle.Render("  (reserved)")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, colorDot, label)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: switch to  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
