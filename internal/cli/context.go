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

// newContextCommand creates the context command group.
func newContextCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "context",
		Aliases: []string{"ctx"},
		Short:   "Record and list daily context",
		Long: `Context entries are messages, emails and notes the assistant reads
when it suggests priorities and deadlines.`,
	}

	cmd.AddCommand(
		newContextListCommand(c),
		newContextAddCommand(c),
	)
	return cmd
}

func newContextListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Source string
		Output string
		Limit  int
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List context entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.ListContextInput{Limit: opts.Limit}
			if opts.Source != "" {
				src, err := domain.ParseSourceType(opts.Source)
				if err != nil {
					return fmt.Errorf("--source %q: %w", opts.Source, err)
				}
				input.Source = src
			}

			uc := c.ListContextUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.Output, out.Entries, func(w io.Writer) {
				printContextList(w, out.Entries)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Filter by source (whatsapp, email, note)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Show at most n entries")
	addOutputFlag(cmd, &opts.Output)
	return cmd
}

// printContextList prints context entries as a table.
func printContextList(w io.Writer, entries []domain.ContextEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No context entries.")
		return
	}

	tw := newTabWriter(w)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tTIME\tSOURCE\tCONTENT")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, formatTime(&e.Timestamp), e.SourceType, oneLine(e.Content, 70))
	}
}

func newContextAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Source string
		At     string
	}

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Record a context entry",
		Long: `Record a message, email or note. The timestamp defaults to now.

Examples:
  taskdeck context add "Boss: report due Friday" --source email
  taskdeck context add "Dentist moved to 3pm" --source whatsapp --at "2025-07-08 09:30"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := domain.ParseSourceType(opts.Source)
			if err != nil {
				return fmt.Errorf("--source %q: %w", opts.Source, err)
			}
			input := usecase.AddContextInput{
				Content: strings.Join(args, " "),
				Source:  src,
			}
			if opts.At != "" {
				at, err := parseTime("at", opts.At)
				if err != nil {
					return err
				}
				input.Timestamp = at
			}

			uc := c.AddContextUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added context entry %s\n", out.Entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", string(domain.SourceNote), "Source type (whatsapp, email, note)")
	cmd.Flags().StringVar(&opts.At, "at", "", "When it happened (default: now)")
	return cmd
}
