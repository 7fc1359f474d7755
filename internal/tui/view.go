package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/runoshun/taskpro/internal/i18n"
)

// View renders the TUI.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.viewHeader())
	if banner := m.viewBanner(); banner != "" {
		sections = append(sections, banner)
	}

	switch m.mode {
	case ModeHelp:
		sections = append(sections, m.viewHelp())
	case ModeDetail:
		sections = append(sections, m.detailViewport.View())
	case ModeConfirm:
		sections = append(sections, m.viewConfirm())
	case ModeNewTask:
		sections = append(sections, m.viewForm(), m.viewBody())
	case ModeNormal, ModeFilter:
		if m.mode == ModeFilter || m.filter != "" {
			sections = append(sections, m.viewFilter())
		}
		sections = append(sections, m.viewBody())
	}

	sections = append(sections, m.viewFooter())
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// clip cuts a single line to the content width.
func (m *Model) clip(s string) string {
	if m.width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(m.contentWidth()), "…")
}

func (m *Model) viewHeader() string {
	title := m.styles.Header.Render(m.catalog.Text(i18n.AppTitle))
	count := m.styles.TaskCount.Render(m.catalog.Text(i18n.TaskCount, len(m.state.Tasks), m.state.Done()))
	subtitle := m.styles.Subtitle.Render(m.catalog.Text(i18n.AppSubtitle))
	return m.clip(title+"  "+count) + "\n" + m.clip(subtitle) + "\n"
}

// viewBanner renders the error message or the last notice.
func (m *Model) viewBanner() string {
	if m.state.Err != "" {
		return m.styles.ErrorBanner.Render(m.clip("⚠ " + m.state.Err))
	}
	if m.notice != "" {
		return m.styles.Notice.Render(m.clip(m.notice))
	}
	return ""
}

// viewBody renders loading, then the empty state, then the list.
func (m *Model) viewBody() string {
	if m.isLoading() {
		return m.spinner.View() + " " + m.styles.Loading.Render(m.catalog.Text(i18n.Loading)+"...")
	}
	if len(m.state.Tasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.EmptyTitle.Render(m.catalog.Text(i18n.EmptyTitle)),
			m.styles.EmptyHint.Render(m.catalog.Text(i18n.EmptyHint)),
		)
	}
	return m.taskList.View()
}

func (m *Model) viewFilter() string {
	if m.mode == ModeFilter {
		return m.filterInput.View()
	}
	return m.styles.InputPrompt.Render("/ ") + m.filter
}

// viewForm renders the new-task form.
func (m *Model) viewForm() string {
	titleLabel := m.styles.FormLabel
	descLabel := m.styles.FormLabel
	if m.focus == fieldTitle {
		titleLabel = m.styles.FormActive
	} else {
		descLabel = m.styles.FormActive
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.FormTitle.Render(m.catalog.Text(i18n.NewTask)),
		"",
		titleLabel.Render(m.catalog.Text(i18n.FieldTitle)),
		m.titleInput.View(),
		"",
		descLabel.Render(m.catalog.Text(i18n.FieldDescription)),
		m.descInput.View(),
		"",
		m.styles.FormActive.Render(m.catalog.Text(i18n.Submit))+"  "+m.help.View(formKeys{k: m.keys}),
	)
	return m.styles.Form.Render(body)
}

// viewConfirm renders the delete dialog.
func (m *Model) viewConfirm() string {
	prompt := m.catalog.Text(i18n.ConfirmDelete)
	if m.pending != nil {
		prompt = m.pending.prompt
	}
	title := m.catalog.Text(i18n.ActionDelete)
	if task := m.SelectedTask(); task != nil {
		title += " : " + fit(escapeNewlines(task.Title), m.contentWidth()-16)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.DialogTitle.Render(title),
		"",
		m.styles.DialogPrompt.Render(prompt),
		"",
		m.help.View(confirmKeys{k: m.keys}),
	)
	return m.styles.Dialog.Render(body)
}

func (m *Model) viewHelp() string {
	return m.styles.Help.Render(m.help.View(m.keys))
}

func (m *Model) viewFooter() string {
	if m.mode == ModeHelp || m.mode == ModeConfirm || m.mode == ModeNewTask {
		return ""
	}
	return m.styles.Footer.Render(m.help.View(m.keys))
}

// detailContent renders the selected task for the detail viewport.
func (m *Model) detailContent(width int) string {
	task := m.SelectedTask()
	if task == nil {
		return ""
	}

	wrap := lipgloss.NewStyle().Width(width)
	row := func(label, value string) string {
		return m.styles.DetailLabel.Render(label) + m.styles.DetailValue.Render(value)
	}

	lines := []string{
		m.styles.DetailTitle.Render(fmt.Sprintf("#%s", task.ID)),
		wrap.Render(m.styles.TaskTitleSelected.Render(task.Title)),
		"",
		row("Status", m.styles.StatusStyle(task.Completed).Render(m.catalog.Status(task.Completed))),
	}
	if date := m.catalog.Date(task.CreatedAt); date != "" {
		lines = append(lines, row("Created", date))
	}
	if task.Description != "" {
		lines = append(lines, m.styles.DetailDesc.Render(wrap.Render(task.Description)))
	}
	return strings.Join(lines, "\n")
}
