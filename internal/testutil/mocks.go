// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/taskpro/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// StoreCall records one call made to MockTaskStore.
type StoreCall struct {
	Task   *domain.Task
	Create domain.CreateTaskRequest
	Op     domain.Op
	ID     domain.TaskID
}

// Ensure MockTaskStore implements domain.TaskStore interface.
var _ domain.TaskStore = (*MockTaskStore)(nil)

// MockTaskStore is an in-memory domain.TaskStore that records every call.
// Mutations change the stored records so a following List sees them.
// Fields are ordered to minimize memory padding.
type MockTaskStore struct {
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	// ListHook, when set, runs inside List before the response is returned.
	ListHook func(ctx context.Context, n int)
	records  []string // JSON records in server order
	Calls    []StoreCall
	mu       sync.Mutex
	nextID   int
}

// NewMockTaskStore creates a store holding the given JSON records.
func NewMockTaskStore(records ...string) *MockTaskStore {
	return &MockTaskStore{
		records: append([]string(nil), records...),
		nextID:  len(records) + 1,
	}
}

// SetRecords replaces the stored records.
func (m *MockTaskStore) SetRecords(records ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]string(nil), records...)
}

// CallCount returns how many calls of op were made.
func (m *MockTaskStore) CallCount(op domain.Op) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countLocked(op)
}

// TotalCalls returns the number of calls of any kind.
func (m *MockTaskStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent call.
func (m *MockTaskStore) LastCall() (StoreCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return StoreCall{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}

// List decodes the stored records.
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	// The response is taken at call time; a slow hook delays its delivery.
	m.mu.Lock()
	m.Calls = append(m.Calls, StoreCall{Op: domain.OpList})
	n := m.countLocked(domain.OpList)
	hook := m.ListHook
	listErr := m.ListErr
	records := append([]string(nil), m.records...)
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if listErr != nil {
		return nil, listErr
	}

	tasks := make([]*domain.Task, 0, len(records))
	for _, r := range records {
		var t domain.Task
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, nil
}

// Create appends a record with the next numeric ID.
func (m *MockTaskStore) Create(_ context.Context, req domain.CreateTaskRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, StoreCall{Op: domain.OpCreate, Create: req})
	if m.CreateErr != nil {
		return m.CreateErr
	}
	rec, err := json.Marshal(map[string]any{
		"id":          m.nextID,
		"title":       req.Title,
		"description": req.Description,
		"completed":   req.Completed,
		"created_at":  "2024-01-01T00:00:00Z",
	})
	if err != nil {
		return err
	}
	m.nextID++
	m.records = append(m.records, string(rec))
	return nil
}

// Update replaces the record with the same ID by the sent body.
func (m *MockTaskStore) Update(_ context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, StoreCall{Op: domain.OpUpdate, ID: task.ID, Task: task.Clone()})
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	body, err := json.Marshal(task)
	if err != nil {
		return err
	}
	i, err := m.indexLocked(task.ID)
	if err != nil {
		return err
	}
	m.records[i] = string(body)
	return nil
}

// Delete removes the record with the given ID.
func (m *MockTaskStore) Delete(_ context.Context, id domain.TaskID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, StoreCall{Op: domain.OpDelete, ID: id})
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	i, err := m.indexLocked(id)
	if err != nil {
		return err
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

func (m *MockTaskStore) countLocked(op domain.Op) int {
	n := 0
	for _, c := range m.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (m *MockTaskStore) indexLocked(id domain.TaskID) (int, error) {
	for i, r := range m.records {
		var t domain.Task
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			return 0, err
		}
		if t.ID == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("404: no task %s", id)
}

// MockConfirmer is a test double for domain.Confirmer.
type MockConfirmer struct {
	Err     error
	Prompts []string
	Answer  bool
}

// Ensure MockConfirmer implements domain.Confirmer interface.
var _ domain.Confirmer = (*MockConfirmer)(nil)

// Confirm records the prompt and returns the configured answer.
func (m *MockConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Answer, m.Err
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that keeps every entry.
type MockLogger struct {
	Entries []LogEntry
	Closes  int
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// Close records that the logger was closed.
func (m *MockLogger) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closes++
	return nil
}

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitFileErr      error
	InitGlobalErr    error
	FileConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitFileCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		GlobalConfigInfo: domain.ConfigInfo{
			Path: "/home/test/.config/taskpro/config.toml",
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// GetFileConfigInfo returns the configured file config info.
func (m *MockConfigManager) GetFileConfigInfo() domain.ConfigInfo {
	return m.FileConfigInfo
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// InitFileConfig records the call and returns configured error.
func (m *MockConfigManager) InitFileConfig() error {
	m.InitFileCalled = true
	return m.InitFileErr
}
