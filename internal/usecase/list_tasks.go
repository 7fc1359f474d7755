// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpro/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct{}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task // Full collection in server order
}

// ListTasks is the use case for fetching the task collection.
type ListTasks struct {
	tasks  domain.TaskStore
	logger domain.Logger
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskStore, logger domain.Logger) *ListTasks {
	return &ListTasks{
		tasks:  tasks,
		logger: orNop(logger),
	}
}

// Execute fetches every task from the store.
func (uc *ListTasks) Execute(ctx context.Context, _ ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.List(ctx)
	if err != nil {
		uc.logger.Error("list", fmt.Sprintf("list tasks: %v", err))
		return nil, domain.NewOperationError(domain.OpList, err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	uc.logger.Debug("list", fmt.Sprintf("fetched %d task(s)", len(tasks)))
	return &ListTasksOutput{Tasks: tasks}, nil
}

// orNop returns l, or a logger that discards everything when l is nil.
func orNop(l domain.Logger) domain.Logger {
	if l == nil {
		return domain.NopLogger{}
	}
	return l
}
