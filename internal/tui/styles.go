package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header    lipgloss.Style
	Subtitle  lipgloss.Style
	TaskCount lipgloss.Style

	// Task list
	SelectionIndicator lipgloss.Style
	TaskTitle          lipgloss.Style
	TaskTitleSelected  lipgloss.Style
	TaskTitleDone      lipgloss.Style
	TaskDesc           lipgloss.Style
	TaskDescSelected   lipgloss.Style
	TaskDate           lipgloss.Style

	// Status badges
	StatusPending lipgloss.Style
	StatusDone    lipgloss.Style

	// Empty and loading states
	EmptyTitle lipgloss.Style
	EmptyHint  lipgloss.Style
	Loading    lipgloss.Style

	// Banners
	ErrorBanner lipgloss.Style
	Notice      lipgloss.Style

	// Help
	Help   lipgloss.Style
	Footer lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Form
	Form       lipgloss.Style
	FormTitle  lipgloss.Style
	FormLabel  lipgloss.Style
	FormActive lipgloss.Style

	// Filter
	InputPrompt lipgloss.Style

	// Detail view
	DetailTitle lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
	DetailDesc  lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Subtitle: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true),

		TaskCount: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		SelectionIndicator: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		TaskDesc: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		TaskDescSelected: lipgloss.NewStyle().
			Foreground(Colors.DescSelected),

		TaskDate: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		StatusPending: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		StatusDone: lipgloss.NewStyle().
			Foreground(Colors.Success),

		EmptyTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleNormal),

		EmptyHint: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Loading: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		ErrorBanner: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Colors.Error),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Secondary),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Error),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Error),

		DialogPrompt: lipgloss.NewStyle(),

		Form: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		FormTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		FormLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FormActive: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(14),

		DetailValue: lipgloss.NewStyle(),

		DetailDesc: lipgloss.NewStyle().
			Foreground(Colors.DescSelected).
			MarginTop(1),
	}
}

// StatusStyle returns the badge style for a completion flag.
func (s Styles) StatusStyle(completed bool) lipgloss.Style {
	if completed {
		return s.StatusDone
	}
	return s.StatusPending
}

// Checkbox returns the checkbox drawn in front of a task.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
