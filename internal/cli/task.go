package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/usecase"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
		Long:    `List, create, edit and delete tasks on the backend.`,
	}

	cmd.AddCommand(
		newTaskListCommand(c),
		newTaskNewCommand(c),
		newTaskShowCommand(c),
		newTaskEditCommand(c),
		newTaskStatusCommand(c),
		newTaskDeleteCommand(c),
	)
	return cmd
}

// newTaskListCommand creates the task list subcommand.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status   string
		Category string
		Output   string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display tasks, newest first.

Output format is a table with columns:
  ID, STATUS, PRIORITY, DEADLINE, CATEGORY, TITLE

Examples:
  # List all tasks
  taskdeck task list

  # List pending tasks in the Work category
  taskdeck task list --status pending --category Work

  # Machine-readable output
  taskdeck task list -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.ListTasksInput{Category: opts.Category}
			if opts.Status != "" {
				st, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return fmt.Errorf("--status %q: %w", opts.Status, err)
				}
				input.Status = st
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.Output, out.Tasks, func(w io.Writer) {
				printTaskList(w, out.Tasks, out.Categories)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (pending, in_progress, done)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category ID or name")
	addOutputFlag(cmd, &opts.Output)
	return cmd
}

// printTaskList prints tasks as a table.
func printTaskList(w io.Writer, tasks []domain.Task, categories domain.CategoryLookup) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks.")
		return
	}

	tw := newTabWriter(w)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tDEADLINE\tCATEGORY\tTITLE")
	for _, task := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			task.ID,
			task.Status,
			task.PriorityScore,
			formatTime(task.Deadline),
			orDash(categories.NameOf(task)),
			oneLine(task.Title, 60),
		)
	}
}

// newTaskNewCommand creates the task new subcommand.
func newTaskNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Category    string
		Status      string
		Deadline    string
		Priority    int
		NoDeadline  bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a task on the backend.

The deadline defaults to now and the priority to [tasks] default_priority
from the config (50 when unset).

Examples:
  taskdeck task new --title "Quarterly report" --category Work --priority 80
  taskdeck task new --title "Someday" --no-deadline
  taskdeck task new --title "Call the bank" --deadline "2025-07-10 17:00"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.CreateTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Category:    opts.Category,
				NoDeadline:  opts.NoDeadline,
			}
			if cmd.Flags().Changed("priority") {
				input.Priority = &opts.Priority
			}
			if opts.Status != "" {
				st, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return fmt.Errorf("--status %q: %w", opts.Status, err)
				}
				input.Status = st
			}
			if opts.Deadline != "" {
				if opts.NoDeadline {
					return fmt.Errorf("--deadline and --no-deadline cannot be used together")
				}
				d, err := parseTime("deadline", opts.Deadline)
				if err != nil {
					return err
				}
				input.Deadline = d
			}

			uc := c.CreateTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category ID or name")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Initial status (default: pending)")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "Deadline (e.g. 2025-07-10 17:00, RFC 3339)")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "Priority score (0-100)")
	cmd.Flags().BoolVar(&opts.NoDeadline, "no-deadline", false, "Create the task without a deadline")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// newTaskShowCommand creates the task show subcommand.
func newTaskShowCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{ID: args[0]})
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), output, out.Task, func(w io.Writer) {
				printTaskDetails(w, out)
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}

// printTaskDetails prints one task in a readable form.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task

	_, _ = fmt.Fprintf(w, "# %s\n\n", task.Title)
	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(task.Description))
	}

	_, _ = fmt.Fprintf(w, "ID: %s\n", task.ID)
	_, _ = fmt.Fprintf(w, "Status: %s\n", task.Status.Display())
	_, _ = fmt.Fprintf(w, "Priority: %d\n", task.PriorityScore)
	_, _ = fmt.Fprintf(w, "Deadline: %s\n", formatTime(task.Deadline))
	switch {
	case out.CategoryName != "":
		_, _ = fmt.Fprintf(w, "Category: %s\n", out.CategoryName)
	case task.HasCategory():
		_, _ = fmt.Fprintf(w, "Category: %s (unknown)\n", *task.CategoryID)
	default:
		_, _ = fmt.Fprintln(w, "Category: none")
	}
	if !task.CreatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Created: %s\n", formatTime(&task.CreatedAt))
	}
	if !task.UpdatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Updated: %s\n", formatTime(&task.UpdatedAt))
	}
}

// newTaskEditCommand creates the task edit subcommand.
func newTaskEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title         string
		Description   string
		Category      string
		Status        string
		Deadline      string
		Priority      int
		NoCategory    bool
		ClearDeadline bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Change fields of an existing task. Only the given flags are changed.

Examples:
  taskdeck task edit 3f2c... --title "New title"
  taskdeck task edit 3f2c... --category Home --priority 20
  taskdeck task edit 3f2c... --no-category --clear-deadline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			input := usecase.EditTaskInput{ID: args[0], ClearDeadline: opts.ClearDeadline}

			if flags.Changed("title") {
				input.Title = &opts.Title
			}
			if flags.Changed("body") {
				input.Description = &opts.Description
			}
			if flags.Changed("priority") {
				input.Priority = &opts.Priority
			}
			switch {
			case opts.NoCategory && flags.Changed("category"):
				return fmt.Errorf("--category and --no-category cannot be used together")
			case opts.NoCategory:
				empty := ""
				input.Category = &empty
			case flags.Changed("category"):
				input.Category = &opts.Category
			}
			if flags.Changed("status") {
				st, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return fmt.Errorf("--status %q: %w", opts.Status, err)
				}
				input.Status = &st
			}
			if flags.Changed("deadline") {
				if opts.ClearDeadline {
					return fmt.Errorf("--deadline and --clear-deadline cannot be used together")
				}
				d, err := parseTime("deadline", opts.Deadline)
				if err != nil {
					return err
				}
				input.Deadline = d
			}

			uc := c.EditTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "New category ID or name")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status")
	cmd.Flags().StringVar(&opts.Deadline, "deadline", "", "New deadline")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "New priority score")
	cmd.Flags().BoolVar(&opts.NoCategory, "no-category", false, "Remove the category")
	cmd.Flags().BoolVar(&opts.ClearDeadline, "clear-deadline", false, "Remove the deadline")
	return cmd
}

// newTaskStatusCommand creates the task status subcommand.
func newTaskStatusCommand(c *app.Container) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "status <id> [status]",
		Short: "Change a task's status",
		Long: `Set the status of a task, or advance it with --next
(pending -> in_progress -> done -> pending).

Examples:
  taskdeck task status 3f2c... done
  taskdeck task status 3f2c... --next`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.SetTaskStatusInput{ID: args[0], Cycle: next}
			switch {
			case next && len(args) == 2:
				return fmt.Errorf("give a status or --next, not both")
			case !next && len(args) == 1:
				return fmt.Errorf("status is required (pending, in_progress, done) unless --next is set")
			case len(args) == 2:
				st, err := domain.ParseStatus(args[1])
				if err != nil {
					return fmt.Errorf("%q: %w", args[1], err)
				}
				input.Status = st
			}

			uc := c.SetTaskStatusUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s -> %s\n", out.Task.ID, out.Previous, out.Task.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Advance to the next status")
	return cmd
}

// newTaskDeleteCommand creates the task delete subcommand.
func newTaskDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DeleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{ID: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}
