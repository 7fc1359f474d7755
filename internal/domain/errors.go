package domain

import "errors"

// Domain errors.
var (
	ErrOperationFailed = errors.New("operation failed")
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrCancelled       = errors.New("cancelled")
	ErrTaskNotFound    = errors.New("task not found")
	ErrConfigExists    = errors.New("config file already exists")
	ErrNoBaseURL       = errors.New("no base URL configured")
	ErrInvalidBaseURL  = errors.New("invalid base URL")
)

// Op names a task store operation.
type Op string

// Task store operations.
const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// OperationError reports that a call to the task store did not complete successfully.
// Transport failures and non-success responses are not distinguished.
type OperationError struct {
	Err error
	Op  Op
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return string(e.Op) + " tasks: " + ErrOperationFailed.Error()
	}
	return string(e.Op) + " tasks: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is matches ErrOperationFailed.
func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

// NewOperationError wraps err as a failure of op.
// An error that already is an OperationError is returned as is.
func NewOperationError(op Op, err error) error {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &OperationError{Op: op, Err: err}
}
