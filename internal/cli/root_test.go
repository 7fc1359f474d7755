package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpro/internal/app"
	"github.com/runoshun/taskpro/internal/testutil"
)

// mockLaunchTUI replaces launchTUIFunc for the duration of the test.
func mockLaunchTUI(t *testing.T) *bool {
	t.Helper()
	originalFunc := launchTUIFunc
	t.Cleanup(func() { launchTUIFunc = originalFunc })

	called := false
	launchTUIFunc = func(_ context.Context, _ *app.Container) error {
		called = true
		return nil
	}
	return &called
}

// factoryFor returns a ContainerFactory handing out c and recording the options it got.
func factoryFor(c *app.Container, got *app.Options) ContainerFactory {
	return func(opts app.Options) (*app.Container, error) {
		*got = opts
		return c, nil
	}
}

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	// Setup
	called := mockLaunchTUI(t)
	var opts app.Options
	root := NewRootCommand(factoryFor(newTestContainer(testutil.NewMockTaskStore()), &opts), "test-version")
	root.SetArgs([]string{})

	// Execute
	err := root.Execute()

	// Assert
	assert.NoError(t, err)
	assert.True(t, *called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_TUISubcommand(t *testing.T) {
	called := mockLaunchTUI(t)
	var opts app.Options
	root := NewRootCommand(factoryFor(newTestContainer(testutil.NewMockTaskStore()), &opts), "test-version")
	root.SetArgs([]string{"tui"})

	err := root.Execute()

	assert.NoError(t, err)
	assert.True(t, *called)
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	// Setup
	called := mockLaunchTUI(t)
	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	// Execute
	err := root.Execute()

	// Assert
	assert.NoError(t, err)
	assert.False(t, *called, "launchTUIFunc should not be called with --help")
	assert.Contains(t, buf.String(), "Task Management:")
	assert.Contains(t, buf.String(), "toggle")
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(nil, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	err := root.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	// Setup
	mockLaunchTUI(t)
	var opts app.Options
	root := NewRootCommand(factoryFor(newTestContainer(testutil.NewMockTaskStore()), &opts), "test")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{
		"--base-url", "https://tasks.example.com/api",
		"--host", "devbox",
		"--locale", "en",
		"--config", "/tmp/taskpro.toml",
		"list",
	})

	// Execute
	err := root.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, app.Options{
		ConfigPath: "/tmp/taskpro.toml",
		BaseURL:    "https://tasks.example.com/api",
		Host:       "devbox",
		Locale:     "en",
	}, opts)
}

func TestNewRootCommand_PrintsWarnings(t *testing.T) {
	// Setup
	c := newTestContainer(testutil.NewMockTaskStore())
	c.AppConfig.Warnings = []string{"unknown section: bogus"}
	var opts app.Options
	root := NewRootCommand(factoryFor(c, &opts), "test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"list"})

	// Execute
	err := root.Execute()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Warning: unknown section: bogus\n", errOut.String())
	assert.Contains(t, out.String(), "Aucune tâche pour le moment")
}

func TestNewRootCommand_FactoryError(t *testing.T) {
	called := mockLaunchTUI(t)
	boom := errors.New("boom")
	root := NewRootCommand(func(app.Options) (*app.Container, error) { return nil, boom }, "test")
	root.SetArgs([]string{})

	err := root.Execute()

	assert.ErrorIs(t, err, boom)
	assert.False(t, *called)
}

func TestSession_BuildsOnce(t *testing.T) {
	builds := 0
	c := newTestContainer(testutil.NewMockTaskStore())
	s := &session{newContainer: func(app.Options) (*app.Container, error) {
		builds++
		return c, nil
	}}

	first, err := s.container()
	require.NoError(t, err)
	second, err := s.container()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
	assert.NoError(t, s.close())
}

func TestExecute_ClosesContainerOnFailure(t *testing.T) {
	// Setup
	store := testutil.NewMockTaskStore()
	store.ListErr = errors.New("connection refused")
	logger := &testutil.MockLogger{}
	c := app.NewWithDeps(nil, store, nil, logger)
	var opts app.Options
	var out, errOut bytes.Buffer

	// Execute
	err := Execute(context.Background(), factoryFor(c, &opts), "test", []string{"list"}, &out, &errOut)

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, logger.Closes, "the container must be closed even when the command fails")
}

func TestExecute_ClosesContainerOnce(t *testing.T) {
	logger := &testutil.MockLogger{}
	c := app.NewWithDeps(nil, testutil.NewMockTaskStore(), nil, logger)
	var opts app.Options

	err := Execute(context.Background(), factoryFor(c, &opts), "test", []string{"list"}, &bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, 1, logger.Closes)
}
