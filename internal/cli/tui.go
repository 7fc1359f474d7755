package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskpro/internal/app"
	"github.com/runoshun/taskpro/internal/tui"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `taskpro` without arguments.
func newTUICommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for managing tasks.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.container()
			if err != nil {
				return err
			}
			return launchTUIFunc(cmd.Context(), c)
		},
	}
	return cmd
}

// launchTUI runs the TUI over the container's task store until the user quits.
func launchTUI(ctx context.Context, c *app.Container) error {
	observe, states := tui.Observer()
	b, err := c.Board(observe)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.New(ctx, b, states)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
