package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpro/internal/domain"
)

// ToggleTaskInput contains the parameters for toggling a task.
type ToggleTaskInput struct {
	Task *domain.Task // Cached record to flip
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct {
	Sent *domain.Task // Record that was sent to the store
}

// ToggleTask is the use case for flipping a task's completion flag.
type ToggleTask struct {
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(tasks domain.TaskStore, logger domain.Logger) *ToggleTask {
	return &ToggleTask{
		tasks:  tasks,
		logger: orNop(logger),
	}
}

// Execute sends the full record with completed inverted.
// The input task is not modified.
func (uc *ToggleTask) Execute(ctx context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	if in.Task == nil {
		return nil, domain.ErrTaskNotFound
	}

	sent := in.Task.Toggled()
	if err := uc.tasks.Update(ctx, sent); err != nil {
		uc.logger.Error("update", fmt.Sprintf("update task %s: %v", in.Task.ID, err))
		return nil, domain.NewOperationError(domain.OpUpdate, err)
	}

	uc.logger.Info("update", fmt.Sprintf("task %s completed=%t", sent.ID, sent.Completed))
	return &ToggleTaskOutput{Sent: sent}, nil
}
