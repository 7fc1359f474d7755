package domain

import (
	"context"
	"time"
)

// TaskStore is the external REST collaborator holding all tasks.
type TaskStore interface {
	// List returns the full collection in server order.
	List(ctx context.Context) ([]*Task, error)

	// Create sends a new task.
	Create(ctx context.Context, req CreateTaskRequest) error

	// Update replaces a task with the given full record.
	Update(ctx context.Context, task *Task) error

	// Delete removes a task by ID.
	Delete(ctx context.Context, id TaskID) error
}

// Confirmer asks the user to approve a destructive action.
// It may block until the user answers; it returns false when refused.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// Logger writes diagnostic traces.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// ConfigLoader loads configuration from files and the environment.
type ConfigLoader interface {
	// Load returns the merged configuration.
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration file.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes a configuration file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates configuration files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetFileConfigInfo() ConfigInfo
	InitGlobalConfig() error
	InitFileConfig() error
}

// HostResolver reports the host name the client is running on.
type HostResolver interface {
	Hostname() (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
