package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpro/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Confirmer domain.Confirmer // Asked before anything is sent
	TaskID    domain.TaskID    // Task ID to delete
	Prompt    string           // Question shown to the user
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct{}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		logger: orNop(logger),
	}
}

// Execute asks for confirmation, then deletes the task.
// A refusal, or a confirmer error, returns domain.ErrCancelled without a call to the store.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if in.Confirmer == nil {
		return nil, fmt.Errorf("delete task %s: no confirmer: %w", in.TaskID, domain.ErrCancelled)
	}

	ok, err := in.Confirmer.Confirm(ctx, in.Prompt)
	if err != nil {
		uc.logger.Debug("delete", fmt.Sprintf("confirm task %s: %v", in.TaskID, err))
		return nil, fmt.Errorf("confirm delete: %v: %w", err, domain.ErrCancelled)
	}
	if !ok {
		return nil, domain.ErrCancelled
	}

	if err := uc.tasks.Delete(ctx, in.TaskID); err != nil {
		uc.logger.Error("delete", fmt.Sprintf("delete task %s: %v", in.TaskID, err))
		return nil, domain.NewOperationError(domain.OpDelete, err)
	}

	uc.logger.Info("delete", fmt.Sprintf("deleted task %s", in.TaskID))
	return &DeleteTaskOutput{}, nil
}
