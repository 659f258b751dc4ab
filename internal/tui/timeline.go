package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tydligtid/tydlig/internal/recorder"
)

type timelineModel struct {
	rec    *recorder.Recorder
	width  int
	height int

	started bool
	data    recorder.TimelineView

	chart barchart.Model
}

func newTimelineModel(rec *recorder.Recorder) timelineModel {
	return timelineModel{
		rec:   rec,
		chart: barchart.New(60, 12),
	}
}

func (t *timelineModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type timelineDataMsg struct {
	started bool
	data    recorder.TimelineView
}

func (t timelineModel) refresh() tea.Cmd {
	return func() tea.Msg {
		view, started := t.rec.TimelineForToday()
		return timelineDataMsg{started: started, data: view}
	}
}

func (t timelineModel) update(msg tea.Msg) (timelineModel, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineDataMsg:
		t.started = msg.started
		t.data = msg.data
		t.buildChart()
		return t, nil
	}
	return t, nil
}

func (t *timelineModel) buildChart() {
	chartWidth := t.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if t.height > 30 {
		chartHeight = 16
	}

	t.chart = barchart.New(chartWidth, chartHeight)

	bars := []barchart.BarData{
		{Label: "Before lunch", Values: segmentValues(t.data.BeforeLunch)},
		{Label: "After lunch", Values: segmentValues(t.data.AfterLunch)},
	}

	t.chart.PushAll(bars)
	t.chart.Draw()
}

func segmentValues(segments []recorder.Segment) []barchart.BarValue {
	if len(segments) == 0 {
		return []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
	}
	values := make([]barchart.BarValue, len(segments))
	for i, s := range segments {
		values[i] = barchart.BarValue{
			Name:  s.Name,
			Value: s.Percentage,
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)),
		}
	}
	return values
}

func (t timelineModel) view() string {
	w := t.width - 4

	if !t.started {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Timeline"),
			"",
			mutedStyle.Render("No day in progress. Press s on the dashboard to start one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	header := titleStyle.Render("Timeline")
	chartView := t.chart.View()
	legend := t.renderLegend()
	tableView := t.renderEntryTable(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", legend, "", tableView,
		),
	)
}

func (t timelineModel) renderLegend() string {
	names := make([]string, 0, len(t.data.Legend))
	for name := range t.data.Legend {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []string
	for _, name := range names {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(t.data.Legend[name])).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, name))
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}

func (t timelineModel) renderEntryTable(w int) string {
	if len(t.data.Entries) == 0 {
		return mutedStyle.Render("  No entries today")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-5s %-5s  %-20s %8s", "Start", "End", "Activity", "Minutes"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 44))))

	for _, e := range t.data.Entries {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Activity.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %-5s %-5s %s %-18s %8d",
			formatClock(e.Start), formatClock(e.End), colorDot, e.Activity.Name, e.Minutes(),
		))
	}

	return strings.Join(rows, "\n")
}
