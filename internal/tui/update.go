package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/i18n"
)

// Update handles messages and returns the updated model and command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.taskList.SetSize(m.contentWidth(), m.listHeight())
		m.titleInput.Width = m.contentWidth() - 6
		m.descInput.SetWidth(m.contentWidth() - 4)
		m.help.Width = m.contentWidth()
		if m.mode == ModeDetail {
			m.initDetailViewport()
		}
		return m, nil

	case MsgStateChanged:
		m.syncState()
		return m, m.waitForState()

	case MsgOpDone:
		return m.handleOpDone(msg)

	case MsgConfirmRequest:
		req := msg.req
		m.pending = &req
		if m.mode != ModeConfirm {
			m.prevMode = m.mode
		}
		m.mode = ModeConfirm
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleOpDone refreshes the view after a board operation.
func (m *Model) handleOpDone(msg MsgOpDone) (tea.Model, tea.Cmd) {
	m.syncState()

	switch {
	case msg.Op == domain.OpDelete && errors.Is(msg.Err, domain.ErrCancelled):
		m.notice = m.catalog.Text(i18n.DeleteCancelled)
	case msg.Op == domain.OpCreate && msg.Err == nil:
		m.resetForm()
		if m.mode == ModeNewTask {
			m.mode = ModeNormal
		}
	}
	return m, nil
}

// handleKeyMsg handles keyboard input based on the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// The banner is dismissed by the next key press.
	if m.state.Err != "" {
		m.board.ClearError()
		m.syncState()
	}
	m.notice = ""

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeFilter:
		return m.handleFilterMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeNewTask:
		return m.handleNewTaskMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeDetail:
		return m.handleDetailMode(msg)
	}
	return m, nil
}

// quit refuses any open confirmation so the waiting delete returns, then exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.pending != nil {
		m.pending.answer(false)
		m.pending = nil
	}
	return m, tea.Quit
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		m.taskList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.taskList.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.toggleCmd(task)

	case key.Matches(msg, m.keys.New):
		return m, m.openForm()

	case key.Matches(msg, m.keys.Delete):
		task := m.SelectedTask()
		if task == nil {
			return m, nil
		}
		return m, m.deleteCmd(task.ID)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.listCmd()

	case key.Matches(msg, m.keys.Filter):
		m.mode = ModeFilter
		m.filterInput.SetValue(m.filter)
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.Detail):
		if m.SelectedTask() == nil {
			return m, nil
		}
		m.mode = ModeDetail
		m.initDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.filter != "" {
			m.filter = ""
			m.updateTaskList()
		}
		return m, nil
	}

	return m, nil
}

// handleFilterMode handles keys in filter mode.
func (m *Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filter = ""
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.mode = ModeNormal
		m.updateTaskList()
		return m, nil
	case "enter":
		m.filterInput.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filter = m.filterInput.Value()
	m.updateTaskList()
	return m, cmd
}

// handleConfirmMode answers the pending delete confirmation.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var ok bool
	switch {
	case key.Matches(msg, m.keys.Confirm):
		ok = true
	case key.Matches(msg, m.keys.Refuse):
		ok = false
	default:
		return m, nil
	}

	if m.pending != nil {
		m.pending.answer(ok)
		m.pending = nil
	}
	m.mode = m.prevMode
	if m.mode == ModeConfirm {
		m.mode = ModeNormal
	}
	return m, m.waitForConfirm()
}

// handleNewTaskMode handles keys in the new-task form.
// Every edit is written to the board's draft.
func (m *Model) handleNewTaskMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.titleInput.Blur()
		m.descInput.Blur()
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.createCmd()

	case msg.String() == "enter" && m.focus == fieldTitle:
		return m, m.createCmd()

	case key.Matches(msg, m.keys.NextField):
		if m.focus == fieldTitle {
			return m, m.focusField(fieldDescription)
		}
		return m, m.focusField(fieldTitle)
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
		if v := m.titleInput.Value(); v != m.state.Draft.Title {
			m.board.SetDraftTitle(v)
		}
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
		if v := m.descInput.Value(); v != m.state.Draft.Description {
			m.board.SetDraftDescription(v)
		}
	}
	m.state = m.board.Snapshot()
	return m, cmd
}

// handleHelpMode closes the help overlay.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
		m.help.ShowAll = false
		m.mode = ModeNormal
	}
	return m, nil
}

// handleDetailMode scrolls or closes the detail view.
func (m *Model) handleDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Detail) {
		m.mode = ModeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) initDetailViewport() {
	width := m.contentWidth()
	height := m.height - 8
	if height < 6 {
		height = 6
	}
	m.detailViewport = viewport.New(width, height)
	m.detailViewport.SetContent(m.detailContent(width))
}
