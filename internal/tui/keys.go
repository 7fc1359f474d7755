package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Task management
	Toggle key.Binding // Flip completion of the selected task
	New    key.Binding // Open the new-task form
	Delete key.Binding // Delete the selected task

	// View
	Refresh key.Binding // Re-fetch the list
	Filter  key.Binding // Enter filter mode
	Detail  key.Binding // Show the selected task
	Help    key.Binding // Show help

	// Form
	Submit    key.Binding // Send the form
	NextField key.Binding // Switch between title and description

	// General
	Quit    key.Binding // Quit application
	Escape  key.Binding // Cancel/back
	Confirm key.Binding // Accept in the confirm dialog
	Refuse  key.Binding // Refuse in the confirm dialog
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "detail"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "next field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "o", "O"),
			key.WithHelp("y", "yes"),
		),
		Refuse: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.New, k.Delete, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},                  // Navigation
		{k.Toggle, k.New, k.Delete},     // Task management
		{k.Refresh, k.Filter, k.Detail}, // View
		{k.Submit, k.NextField},         // Form
		{k.Help, k.Escape, k.Quit},      // General
	}
}

// formKeys is the help shown under the new-task form.
type formKeys struct {
	k KeyMap
}

func (f formKeys) ShortHelp() []key.Binding {
	return []key.Binding{f.k.NextField, f.k.Submit, f.k.Escape}
}

func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}

// confirmKeys is the help shown under the confirm dialog.
type confirmKeys struct {
	k KeyMap
}

func (c confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{c.k.Confirm, c.k.Refuse}
}

func (c confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{c.ShortHelp()}
}
