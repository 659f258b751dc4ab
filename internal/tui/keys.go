package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start    key.Binding
	Switch   key.Binding
	Lunch    key.Binding
	LunchLen key.Binding
	Break    key.Binding
	BreakEnd key.Binding
	DayStart key.Binding
	New      key.Binding
	Export   key.Binding
	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	Tab      key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start day"),
	),
	Switch: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "switch project"),
	),
	Lunch: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "lunch"),
	),
	LunchLen: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "lunch length"),
	),
	Break: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "break"),
	),
	BreakEnd: key.NewBinding(
		key.WithKeys("B"),
		key.WithHelp("B", "end break"),
	),
	DayStart: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "fix start time"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new activity"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "timeline"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "activities"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Switch, k.Lunch, k.Break, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Switch, k.DayStart},
		{k.Lunch, k.LunchLen, k.Break, k.BreakEnd},
		{k.New, k.Export, k.Tab1, k.Tab2, k.Tab3},
		{k.Up, k.Down, k.Enter, k.Back, k.Quit},
	}
}
