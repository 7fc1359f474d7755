package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpro/internal/domain"
)

// NewTaskInput contains the parameters for creating a task.
type NewTaskInput struct {
	Title       string // Task title (required, sent as typed)
	Description string // Task description (optional)
}

// NewTaskOutput contains the result of creating a task.
type NewTaskOutput struct{}

// NewTask is the use case for creating a task.
type NewTask struct {
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskStore, logger domain.Logger) *NewTask {
	return &NewTask{
		tasks:  tasks,
		logger: orNop(logger),
	}
}

// Execute validates the title and sends the new task.
// A blank title fails with domain.ErrEmptyTitle before any call to the store.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	draft := domain.Draft{Title: in.Title, Description: in.Description}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if err := uc.tasks.Create(ctx, draft.Request()); err != nil {
		uc.logger.Error("create", fmt.Sprintf("create task %q: %v", in.Title, err))
		return nil, domain.NewOperationError(domain.OpCreate, err)
	}

	uc.logger.Info("create", fmt.Sprintf("created task %q", in.Title))
	return &NewTaskOutput{}, nil
}
