// Package board holds the client-side task list state and the operations that change it.
//
// A Board caches the last task list fetched from the store together with the
// new-task draft, a loading flag and one error message. Every successful
// mutation re-fetches the whole list; the cache is never patched locally.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/i18n"
	"github.com/runoshun/taskpro/internal/usecase"
)

// State is a point-in-time copy of the board.
// Fields are ordered to minimize memory padding.
type State struct {
	Tasks   []*domain.Task // Cached list in server order; records must not be modified
	Draft   domain.Draft   // New-task form contents
	Err     string         // Message of the last failed operation, "" if none
	Loading   bool           // A list call is in flight
	Loaded    bool           // At least one list call succeeded
	Attempted bool           // At least one list call finished, successfully or not
}

// Done returns the number of completed tasks.
func (s State) Done() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// UseCases are the operations a Board composes.
type UseCases struct {
	List   *usecase.ListTasks
	Create *usecase.NewTask
	Toggle *usecase.ToggleTask
	Delete *usecase.DeleteTask
}

// UseCasesFor builds the use cases over a single store.
func UseCasesFor(store domain.TaskStore, logger domain.Logger) UseCases {
	return UseCases{
		List:   usecase.NewListTasks(store, logger),
		Create: usecase.NewNewTask(store, logger),
		Toggle: usecase.NewToggleTask(store, logger),
		Delete: usecase.NewDeleteTask(store, logger),
	}
}

// Option configures a Board.
type Option func(*Board)

// WithObserver registers fn to be called with a fresh State after every change.
// fn runs on the goroutine that made the change, outside the board's lock.
func WithObserver(fn func(State)) Option {
	return func(b *Board) {
		b.observer = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithLatestListWins controls overlapping list calls.
// When on (the default) a list response is dropped if a newer list call was
// issued after it. When off the last response to arrive wins.
func WithLatestListWins(on bool) Option {
	return func(b *Board) {
		b.latestWins = on
	}
}

// Board is the task list client.
// Fields are ordered to minimize memory padding.
type Board struct {
	uc         UseCases
	catalog    *i18n.Catalog
	logger     domain.Logger
	observer   func(State)
	tasks      []*domain.Task
	draft      domain.Draft
	err        string
	gen        uint64
	mu         sync.Mutex
	loading    bool
	loaded     bool
	attempted  bool
	latestWins bool
}

// New creates a Board with an empty cache.
func New(uc UseCases, catalog *i18n.Catalog, opts ...Option) *Board {
	if catalog == nil {
		catalog = i18n.New(domain.DefaultLocale)
	}
	b := &Board{
		uc:         uc,
		catalog:    catalog,
		logger:     domain.NopLogger{},
		tasks:      []*domain.Task{},
		latestWins: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Catalog returns the message catalog the board reports errors with.
func (b *Board) Catalog() *i18n.Catalog {
	return b.catalog
}

// Snapshot returns a copy of the current state.
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Board) snapshotLocked() State {
	return State{
		Tasks:     append([]*domain.Task(nil), b.tasks...),
		Draft:     b.draft,
		Err:       b.err,
		Loading:   b.loading,
		Loaded:    b.loaded,
		Attempted: b.attempted,
	}
}

// update applies fn under the lock, then notifies the observer.
func (b *Board) update(fn func()) {
	b.mu.Lock()
	fn()
	s := b.snapshotLocked()
	obs := b.observer
	b.mu.Unlock()
	if obs != nil {
		obs(s)
	}
}

func (b *Board) fail(key i18n.Key) {
	msg := b.catalog.Text(key)
	b.update(func() { b.err = msg })
}

// Find returns the cached task with the given ID.
func (b *Board) Find(id domain.TaskID) (*domain.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// List fetches the full collection and replaces the cache.
// On failure the previous list is kept and the load error message is set.
func (b *Board) List(ctx context.Context) error {
	var gen uint64
	b.update(func() {
		b.gen++
		gen = b.gen
		b.loading = true
	})

	out, err := b.uc.List.Execute(ctx, usecase.ListTasksInput{})

	b.mu.Lock()
	if b.latestWins && gen != b.gen {
		b.mu.Unlock()
		b.logger.Debug("board", fmt.Sprintf("dropped stale list response (generation %d)", gen))
		return err
	}
	b.mu.Unlock()

	if err != nil {
		msg := b.catalog.Text(i18n.LoadFailed)
		b.update(func() {
			b.loading = false
			b.attempted = true
			b.err = msg
		})
		return err
	}

	b.update(func() {
		b.loading = false
		b.loaded = true
		b.attempted = true
		b.tasks = out.Tasks
		b.err = ""
	})
	return nil
}

// Draft returns the new-task form contents.
func (b *Board) Draft() domain.Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

// SetDraftTitle replaces the draft title.
func (b *Board) SetDraftTitle(title string) {
	b.update(func() { b.draft.Title = title })
}

// SetDraftDescription replaces the draft description.
func (b *Board) SetDraftDescription(description string) {
	b.update(func() { b.draft.Description = description })
}

// ClearError dismisses the error message.
func (b *Board) ClearError() {
	b.update(func() { b.err = "" })
}

// CreateWith sets the draft and creates a task from it.
func (b *Board) CreateWith(ctx context.Context, title, description string) error {
	b.update(func() {
		b.draft = domain.Draft{Title: title, Description: description}
	})
	return b.Create(ctx)
}

// Create sends the draft as a new task.
// A blank title sets the validation message and returns domain.ErrEmptyTitle
// without contacting the store. On success the draft is cleared and the list
// is fetched once.
func (b *Board) Create(ctx context.Context) error {
	draft := b.Draft()

	_, err := b.uc.Create.Execute(ctx, usecase.NewTaskInput{
		Title:       draft.Title,
		Description: draft.Description,
	})
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		b.fail(i18n.TitleRequired)
		return err
	case err != nil:
		b.fail(i18n.CreateFailed)
		return err
	}

	b.update(func() { b.draft = domain.Draft{} })
	return b.List(ctx)
}

// ToggleCompletion sends task with its completion flag inverted, then
// re-fetches the list. The cached record is never flipped locally.
func (b *Board) ToggleCompletion(ctx context.Context, task *domain.Task) error {
	if _, err := b.uc.Toggle.Execute(ctx, usecase.ToggleTaskInput{Task: task}); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return err
		}
		b.fail(i18n.UpdateFailed)
		return err
	}
	return b.List(ctx)
}

// Delete asks confirmer, then removes the task and re-fetches the list.
// A refusal returns domain.ErrCancelled and leaves the state untouched.
func (b *Board) Delete(ctx context.Context, id domain.TaskID, confirmer domain.Confirmer) error {
	_, err := b.uc.Delete.Execute(ctx, usecase.DeleteTaskInput{
		TaskID:    id,
		Confirmer: confirmer,
		Prompt:    b.catalog.Text(i18n.ConfirmDelete),
	})
	switch {
	case errors.Is(err, domain.ErrCancelled):
		return err
	case err != nil:
		b.fail(i18n.DeleteFailed)
		return err
	}
	return b.List(ctx)
}
