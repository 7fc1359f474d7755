package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskpro/internal/board"
	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/i18n"
)

// stateBuffer is how many board changes may queue before older ones are dropped.
// The model always re-reads the board, so a dropped change only delays a repaint.
const stateBuffer = 64

// Observer returns a board option that forwards state changes to the returned channel.
// Pass both to New: the option when building the board, the channel to the model.
func Observer() (board.Option, <-chan board.State) {
	ch := make(chan board.State, stateBuffer)
	opt := board.WithObserver(func(s board.State) {
		select {
		case ch <- s:
		default:
		}
	})
	return opt, ch
}

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	ctx       context.Context
	board     *board.Board
	catalog   *i18n.Catalog
	confirmer *promptConfirmer
	states    <-chan board.State
	pending   *confirmRequest

	// State
	state  board.State
	notice string
	filter string

	// Components
	keys           KeyMap
	styles         Styles
	help           help.Model
	spinner        spinner.Model
	taskList       list.Model
	detailViewport viewport.Model

	// Input state
	titleInput  textinput.Model
	descInput   textarea.Model
	filterInput textinput.Model

	// Numeric state (smaller types last)
	mode     Mode
	prevMode Mode
	focus    formField
	width    int
	height   int
}

// New creates a new TUI Model over b.
// states may be nil; the view then refreshes only when an operation returns.
func New(ctx context.Context, b *board.Board, states <-chan board.State) *Model {
	catalog := b.Catalog()

	ti := textinput.New()
	ti.Placeholder = catalog.Text(i18n.PlaceholderTitle)
	ti.CharLimit = 200

	di := textarea.New()
	di.Placeholder = catalog.Text(i18n.PlaceholderDescription)
	di.ShowLineNumbers = false
	di.CharLimit = 2000
	di.SetHeight(3)

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.CharLimit = 100

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	styles := DefaultStyles()
	taskList := list.New([]list.Item{}, newTaskDelegate(styles, catalog), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	m := &Model{
		ctx:         ctx,
		board:       b,
		catalog:     catalog,
		confirmer:   newPromptConfirmer(),
		states:      states,
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		spinner:     sp,
		taskList:    taskList,
		titleInput:  ti,
		descInput:   di,
		filterInput: fi,
		mode:        ModeNormal,
	}
	m.syncState()
	return m
}

// Init starts the first fetch and the background listeners.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.listCmd(),
		m.waitForState(),
		m.waitForConfirm(),
		m.spinner.Tick,
	)
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		return ti.task
	}
	return nil
}

// syncState re-reads the board and rebuilds the list items.
func (m *Model) syncState() {
	m.state = m.board.Snapshot()
	m.updateTaskList()
}

// updateTaskList updates the task list items from the cached tasks, in server order.
func (m *Model) updateTaskList() {
	filter := strings.ToLower(m.filter)
	items := make([]list.Item, 0, len(m.state.Tasks))
	for _, task := range m.state.Tasks {
		if filter != "" && !strings.Contains(strings.ToLower(task.Title), filter) {
			continue
		}
		items = append(items, taskItem{task: task})
	}
	m.taskList.SetItems(items)
}

// isLoading reports whether the loading indicator replaces the list.
// Until the first list call finishes nothing is known, so the indicator shows.
func (m *Model) isLoading() bool {
	return m.state.Loading || !m.state.Attempted
}

// listCmd returns a command that re-fetches the list.
func (m *Model) listCmd() tea.Cmd {
	return func() tea.Msg {
		return MsgOpDone{Op: domain.OpList, Err: m.board.List(m.ctx)}
	}
}

// createCmd returns a command that sends the draft.
func (m *Model) createCmd() tea.Cmd {
	return func() tea.Msg {
		return MsgOpDone{Op: domain.OpCreate, Err: m.board.Create(m.ctx)}
	}
}

// toggleCmd returns a command that flips task's completion flag.
func (m *Model) toggleCmd(task *domain.Task) tea.Cmd {
	return func() tea.Msg {
		return MsgOpDone{Op: domain.OpUpdate, Err: m.board.ToggleCompletion(m.ctx, task)}
	}
}

// deleteCmd returns a command that deletes id after the user confirms in the dialog.
func (m *Model) deleteCmd(id domain.TaskID) tea.Cmd {
	return func() tea.Msg {
		return MsgOpDone{Op: domain.OpDelete, Err: m.board.Delete(m.ctx, id, m.confirmer)}
	}
}

// waitForState returns a command that waits for the next board change.
func (m *Model) waitForState() tea.Cmd {
	if m.states == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case s, ok := <-m.states:
			if !ok {
				return nil
			}
			return MsgStateChanged{State: s}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// waitForConfirm returns a command that waits for the next confirmation request.
func (m *Model) waitForConfirm() tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-m.confirmer.requests:
			return MsgConfirmRequest{req: req}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// resetForm empties the form inputs and focuses the title.
func (m *Model) resetForm() {
	m.titleInput.Reset()
	m.descInput.Reset()
	m.focus = fieldTitle
}

// openForm shows the form filled from the board's draft.
func (m *Model) openForm() tea.Cmd {
	draft := m.board.Draft()
	m.titleInput.SetValue(draft.Title)
	m.descInput.SetValue(draft.Description)
	m.mode = ModeNewTask
	return m.focusField(fieldTitle)
}

// focusField moves the form focus to f.
func (m *Model) focusField(f formField) tea.Cmd {
	m.focus = f
	if f == fieldTitle {
		m.descInput.Blur()
		return m.titleInput.Focus()
	}
	m.titleInput.Blur()
	return m.descInput.Focus()
}

// listHeight returns the rows available to the task list.
func (m *Model) listHeight() int {
	h := m.height - 9
	if h < 3 {
		h = 3
	}
	return h
}

// contentWidth returns the usable width inside the app padding.
func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}
