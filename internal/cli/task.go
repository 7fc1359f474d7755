package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskpro/internal/board"
	"github.com/runoshun/taskpro/internal/domain"
	"github.com/runoshun/taskpro/internal/i18n"
)

// Output formats for list.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// taskFilter selects which tasks list prints.
type taskFilter int

const (
	filterAll taskFilter = iota
	filterPending
	filterDone
)

// match reports whether task passes the filter.
func (f taskFilter) match(task *domain.Task) bool {
	switch f {
	case filterPending:
		return !task.Completed
	case filterDone:
		return task.Completed
	case filterAll:
		return true
	}
	return true
}

// openBoard returns a board from the session's container.
func openBoard(s *session) (*board.Board, error) {
	c, err := s.container()
	if err != nil {
		return nil, err
	}
	return c.Board()
}

// failure adds the user-facing message the board recorded to err.
func failure(b *board.Board, err error) error {
	if msg := b.Snapshot().Err; msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// newListCommand creates the list command.
func newListCommand(s *session) *cobra.Command {
	var opts struct {
		format  string
		all     bool
		pending bool
		done    bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in the order the task store returns them.

Output formats:
  table  ID, status, creation date and title (default)
  json   full records as received
  yaml   full records as received

Filtering with --pending or --done is applied to the fetched list only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.format {
			case formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (want table, json or yaml)", opts.format)
			}
			filter := filterAll
			switch {
			case opts.pending:
				filter = filterPending
			case opts.done:
				filter = filterDone
			}

			b, err := openBoard(s)
			if err != nil {
				return err
			}
			if err := b.List(cmd.Context()); err != nil {
				return failure(b, err)
			}

			state := b.Snapshot()
			tasks := make([]*domain.Task, 0, len(state.Tasks))
			for _, t := range state.Tasks {
				if filter.match(t) {
					tasks = append(tasks, t)
				}
			}

			w := cmd.OutOrStdout()
			switch opts.format {
			case formatJSON:
				return printTasksJSON(w, tasks)
			case formatYAML:
				return printTasksYAML(w, tasks)
			}
			printTaskList(w, b.Catalog(), tasks, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Show all tasks (default)")
	cmd.Flags().BoolVarP(&opts.pending, "pending", "p", false, "Show only pending tasks")
	cmd.Flags().BoolVarP(&opts.done, "done", "d", false, "Show only completed tasks")
	cmd.MarkFlagsMutuallyExclusive("all", "pending", "done")

	return cmd
}

// printTaskList prints tasks as a table, or the empty-state message when the store has none.
func printTaskList(w io.Writer, catalog *i18n.Catalog, tasks []*domain.Task, state board.State) {
	if len(state.Tasks) == 0 {
		_, _ = fmt.Fprintln(w, catalog.Text(i18n.EmptyTitle))
		_, _ = fmt.Fprintln(w, catalog.Text(i18n.EmptyHint))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tSTATUS\tCREATED\tTITLE")
	for _, task := range tasks {
		created := catalog.Date(task.CreatedAt)
		if created == "" {
			created = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			checkbox(task.Completed),
			catalog.Status(task.Completed),
			created,
			oneLine(task.Title),
		)
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, catalog.Text(i18n.TaskCount, len(state.Tasks), state.Done()))
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// oneLine keeps a table row on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// printTasksJSON prints the full records as an indented JSON array.
func printTasksJSON(w io.Writer, tasks []*domain.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return nil
}

// printTasksYAML prints the full records as YAML.
// Records go through JSON first so fields the client does not model are kept.
func printTasksYAML(w io.Writer, tasks []*domain.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var records []any
	if err := dec.Decode(&records); err != nil {
		return fmt.Errorf("decode tasks: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// newAddCommand creates the add command.
func newAddCommand(s *session) *cobra.Command {
	var opts struct {
		title string
		body  string
	}

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"new"},
		Short:   "Create a new task",
		Long: `Create a new task and print the refreshed list.

The title must not be blank. The task is created as not completed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBoard(s)
			if err != nil {
				return err
			}
			if err := b.CreateWith(cmd.Context(), opts.title, opts.body); err != nil {
				return failure(b, err)
			}

			state := b.Snapshot()
			printTaskList(cmd.OutOrStdout(), b.Catalog(), state.Tasks, state)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Task title (required)")
	cmd.Flags().StringVarP(&opts.body, "body", "b", "", "Task description")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newToggleCommand creates the toggle command.
func newToggleCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or pending",
		Long: `Invert the completion flag of a task and print the refreshed list.

The list is fetched first and the task is sent back as found there, with
only its completion flag changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			b, err := openBoard(s)
			if err != nil {
				return err
			}
			if err := b.List(cmd.Context()); err != nil {
				return failure(b, err)
			}
			task, ok := b.Find(id)
			if !ok {
				return fmt.Errorf("%s: %w", b.Catalog().Text(i18n.TaskNotFound, id), domain.ErrTaskNotFound)
			}
			if err := b.ToggleCompletion(cmd.Context(), task); err != nil {
				return failure(b, err)
			}

			state := b.Snapshot()
			printTaskList(cmd.OutOrStdout(), b.Catalog(), state.Tasks, state)
			return nil
		},
	}

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task and print the refreshed list.

Asks for confirmation on the terminal unless --yes is given. Answering
anything but yes leaves the task in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			b, err := openBoard(s)
			if err != nil {
				return err
			}

			var confirmer domain.Confirmer = newLineConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
			if yes {
				confirmer = domain.AlwaysConfirm
			}

			err = b.Delete(cmd.Context(), id, confirmer)
			if errors.Is(err, domain.ErrCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), b.Catalog().Text(i18n.DeleteCancelled))
				return nil
			}
			if err != nil {
				return failure(b, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%s\n\n", id)
			state := b.Snapshot()
			printTaskList(cmd.OutOrStdout(), b.Catalog(), state.Tasks, state)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}

// parseTaskID parses a task ID given on the command line.
func parseTaskID(s string) (domain.TaskID, error) {
	// Remove leading # if present
	s = strings.TrimSpace(strings.TrimPrefix(s, "#"))
	if s == "" {
		return "", errors.New("invalid task ID: empty")
	}
	return domain.ParseTaskID(s), nil
}

// lineConfirmer asks on a terminal and reads a one-line answer.
type lineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// Ensure lineConfirmer implements domain.Confirmer interface.
var _ domain.Confirmer = (*lineConfirmer)(nil)

func newLineConfirmer(in io.Reader, out io.Writer) *lineConfirmer {
	return &lineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt and accepts y, yes, o or oui. End of input refuses.
func (c *lineConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	_, _ = fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true, nil
	}
	return false, nil
}
