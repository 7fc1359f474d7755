package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/i18n"
)

type taskItem struct {
	task *domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// fit truncates s to width cells, marking the cut with "...".
func fit(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// pad right-pads line with spaces up to width cells.
func pad(line string, width int) string {
	if w := runewidth.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

type taskDelegate struct {
	catalog *i18n.Catalog
	styles  Styles
}

func newTaskDelegate(styles Styles, catalog *i18n.Catalog) taskDelegate {
	return taskDelegate{styles: styles, catalog: catalog}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws two lines per task: checkbox, title, status and date, then the description.
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()
	listWidth := m.Width()

	indicator := " "
	if selected {
		indicator = ">"
	}
	status := d.catalog.Status(task.Completed)
	date := d.catalog.Date(task.CreatedAt)

	// "  > [x] " then title, two spaces, status, two spaces, date
	prefix := "  " + indicator + " " + Checkbox(task.Completed) + " "
	suffixWidth := 2 + runewidth.StringWidth(status)
	if date != "" {
		suffixWidth += 2 + runewidth.StringWidth(date)
	}
	maxTitle := listWidth - runewidth.StringWidth(prefix) - suffixWidth - 1
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := fit(escapeNewlines(task.Title), maxTitle)

	titleStyle := d.styles.TaskTitle
	switch {
	case selected:
		titleStyle = d.styles.TaskTitleSelected
	case task.Completed:
		titleStyle = d.styles.TaskTitleDone
	}
	statusStyle := d.styles.StatusStyle(task.Completed)
	if selected {
		statusStyle = statusStyle.Bold(true)
	}

	line := d.styles.SelectionIndicator.Render(prefix) +
		titleStyle.Render(pad(title, maxTitle)) + "  " +
		statusStyle.Render(status)
	if date != "" {
		line += "  " + d.styles.TaskDate.Render(date)
	}
	_, _ = fmt.Fprintln(w, line)

	descLine := strings.Repeat(" ", runewidth.StringWidth(prefix))
	if task.Description != "" {
		descLine += fit(escapeNewlines(task.Description), listWidth-len(descLine)-1)
	}
	descStyle := d.styles.TaskDesc
	if selected {
		descStyle = d.styles.TaskDescSelected
	}
	_, _ = fmt.Fprint(w, descStyle.Render(pad(descLine, listWidth)))
}
