package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // default
		{"", slog.LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogger_Info(t *testing.T) {
	// Setup
	stateDir := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 12, 30, 9, 32, 51, 0, time.UTC)}
	logger := New(stateDir, slog.LevelInfo).WithClock(clock)
	defer func() { _ = logger.Close() }()

	// Execute
	logger.Info("board", "list ok")

	// Assert
	content, err := os.ReadFile(domain.LogPath(stateDir))
	require.NoError(t, err)
	assert.Equal(t, "[2025-12-30 09:32:51] [INFO] [board] list ok\n", string(content))
}

func TestLogger_LevelFiltering(t *testing.T) {
	stateDir := t.TempDir()
	logger := New(stateDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("http", "trace")
	logger.Info("board", "info")
	logger.Warn("board", "warn message")
	logger.Error("board", "error message")

	content, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(content), "trace")
	assert.NotContains(t, string(content), "[INFO]")
	assert.Contains(t, string(content), "[WARN] [board] warn message")
	assert.Contains(t, string(content), "[ERROR] [board] error message")
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)

	assert.NotPanics(t, func() {
		logger.Error("board", "dropped")
	})
	assert.Empty(t, logger.Path())
	assert.NoError(t, logger.Close())
}

func TestLogger_NilReceiver(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("board", "dropped")
	})
}

func TestLogger_ReopensAfterClose(t *testing.T) {
	stateDir := t.TempDir()
	logger := New(stateDir, slog.LevelInfo)

	logger.Info("a", "first")
	require.NoError(t, logger.Close())
	logger.Info("a", "second")
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "\n"))
}

func TestLogger_Concurrent(t *testing.T) {
	stateDir := t.TempDir()
	logger := New(stateDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("board", "concurrent")
		}()
	}
	wg.Wait()

	content, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	assert.Equal(t, 20, strings.Count(string(content), "concurrent\n"))
}
