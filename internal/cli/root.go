// Package cli provides the command-line interface for taskpro.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpro/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
)

// ContainerFactory builds the container once the global flags are known.
type ContainerFactory func(app.Options) (*app.Container, error)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// session holds what subcommands share during one invocation.
// The container is built lazily so the global flags can shape it.
type session struct {
	newContainer ContainerFactory
	c            *app.Container
	opts         app.Options
}

// container returns the container, building it on first use.
func (s *session) container() (*app.Container, error) {
	if s.c != nil {
		return s.c, nil
	}
	if s.newContainer == nil {
		return nil, errors.New("no container available")
	}
	c, err := s.newContainer(s.opts)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	s.c = c
	return c, nil
}

// close releases the container if one was built.
// close releases the container. It is safe to call more than once.
func (s *session) close() error {
	if s.c == nil {
		return nil
	}
	c := s.c
	s.c = nil
	return c.Close()
}

// NewRootCommand creates the root command for taskpro.
// newContainer is called once, after flag parsing, to build the dependency container.
func NewRootCommand(newContainer ContainerFactory, version string) *cobra.Command {
	return newRootCommand(&session{newContainer: newContainer}, version)
}

// Execute runs the root command with args and closes the container on every
// path. Cobra skips PersistentPostRunE when a command fails, so the close
// cannot live in the command tree alone.
func Execute(ctx context.Context, newContainer ContainerFactory, version string, args []string, stdout, stderr io.Writer) (err error) {
	s := &session{newContainer: newContainer}
	root := newRootCommand(s, version)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCommand(s *session, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskpro",
		Short: "Task list client for a REST task store",
		Long: `taskpro is a client for a task list kept by a REST service.

Tasks are listed, created, marked done or pending, and deleted through
four HTTP endpoints. After every change the whole list is fetched again.

Run without arguments to open the interactive TUI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.container()
			if err != nil {
				return err
			}
			for _, w := range c.Warnings() {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return s.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.container()
			if err != nil {
				return err
			}
			return launchTUIFunc(cmd.Context(), c)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.opts.ConfigPath, "config", "", "Configuration file merged over the global one")
	pf.StringVar(&s.opts.BaseURL, "base-url", "", "Base URL of the task store (overrides configuration)")
	pf.StringVar(&s.opts.Host, "host", "", "Host name used to pick the development base URL")
	pf.StringVar(&s.opts.Locale, "locale", "", "Message and date locale (fr, en)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	// Setup commands
	configCmd := newConfigCommand(s)
	configCmd.GroupID = groupSetup

	// Task management commands
	listCmd := newListCommand(s)
	listCmd.GroupID = groupTask

	addCmd := newAddCommand(s)
	addCmd.GroupID = groupTask

	toggleCmd := newToggleCommand(s)
	toggleCmd.GroupID = groupTask

	rmCmd := newRmCommand(s)
	rmCmd.GroupID = groupTask

	tuiCmd := newTUICommand(s)
	tuiCmd.GroupID = groupTask

	root.AddCommand(
		configCmd,
		listCmd,
		addCmd,
		toggleCmd,
		rmCmd,
		tuiCmd,
	)

	return root
}
