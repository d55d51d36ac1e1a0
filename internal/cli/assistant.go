package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/usecase"
)

// newSuggestCommand creates the suggest command.
func newSuggestCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title        string
		Description  string
		Category     string
		Output       string
		Prefs        []string
		ContextLimit int
		Create       bool
	}

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the assistant about a task draft",
		Long: `Ask the assistant for a priority, a deadline, an improved description
and categories for a task draft. The most recent context entries are sent
along with the draft; at least one entry must exist.

With --create, the task is created with the suggested values. Suggested
categories that do not exist are skipped.

Examples:
  taskdeck suggest --title "Quarterly report" --body "numbers for Q3"
  taskdeck suggest --title "Plan trip" --pref tone=short --create`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := parsePrefs(opts.Prefs)
			if err != nil {
				return err
			}

			uc := c.SuggestTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SuggestTaskInput{
				Title:        opts.Title,
				Description:  opts.Description,
				Category:     opts.Category,
				Preferences:  prefs,
				ContextLimit: opts.ContextLimit,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if err := writeOutput(w, opts.Output, out.Suggestion, func(w io.Writer) {
				printSuggestion(w, out.Suggestion)
			}); err != nil {
				return err
			}
			if !opts.Create {
				return nil
			}

			created, err := createFromSuggestion(cmd, c, opts.Title, opts.Category, out.Suggestion)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Created task %s\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category name")
	cmd.Flags().StringArrayVar(&opts.Prefs, "pref", nil, "User preference as key=value (can specify multiple)")
	cmd.Flags().IntVar(&opts.ContextLimit, "context-limit", usecase.DefaultSuggestionContext, "Number of recent context entries to send")
	cmd.Flags().BoolVar(&opts.Create, "create", false, "Create the task with the suggested values")
	addOutputFlag(cmd, &opts.Output)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// parsePrefs turns key=value flags into a preferences map.
func parsePrefs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	prefs := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("--pref %q: want key=value", p)
		}
		prefs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return prefs, nil
}

// printSuggestion prints the assistant's suggestions.
func printSuggestion(w io.Writer, s *domain.Suggestion) {
	_, _ = fmt.Fprintf(w, "Priority: %d\n", s.Prioritization)
	_, _ = fmt.Fprintf(w, "Deadline: %s\n", formatTime(s.DeadlineRecommendation))
	if len(s.CategoryRecommendations) > 0 {
		_, _ = fmt.Fprintf(w, "Categories: %s\n", strings.Join(s.CategoryRecommendations, ", "))
	} else {
		_, _ = fmt.Fprintln(w, "Categories: -")
	}
	if s.EnhancedDescription != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(s.EnhancedDescription))
	}
}

// createFromSuggestion creates a task from the suggested values.
// The requested category wins over the recommendations.
func createFromSuggestion(cmd *cobra.Command, c *app.Container, title, category string, s *domain.Suggestion) (domain.Task, error) {
	input := usecase.CreateTaskInput{
		Title:       title,
		Description: s.EnhancedDescription,
		Priority:    &s.Prioritization,
		Deadline:    s.DeadlineRecommendation,
		NoDeadline:  s.DeadlineRecommendation == nil,
		Category:    category,
	}

	if input.Category == "" && len(s.CategoryRecommendations) > 0 {
		list, err := c.ListCategoriesUseCase().Execute(cmd.Context(), usecase.ListCategoriesInput{})
		if err != nil {
			return domain.Task{}, err
		}
		for _, name := range s.CategoryRecommendations {
			if found, ok := domain.FindCategory(list.Categories, name); ok {
				input.Category = found.ID
				break
			}
		}
	}

	out, err := c.CreateTaskUseCase().Execute(cmd.Context(), input)
	if err != nil {
		return domain.Task{}, err
	}
	return out.Task, nil
}

// newChatCommand creates the chat command.
func newChatCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Width int
		Raw   bool
	}

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the assistant about your tasks",
		Long: `Send a message to the assistant together with the current tasks.

With a message, one reply is printed. Without one, an interactive session
reads messages from stdin until EOF or "exit"; the conversation history
is kept for the session.

Examples:
  taskdeck chat "what should I do first today?"
  taskdeck chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			render := markdownRenderer(opts.Raw, opts.Width)
			uc := c.ChatUseCase()
			w := cmd.OutOrStdout()

			if len(args) > 0 {
				out, err := uc.Execute(cmd.Context(), usecase.ChatInput{Message: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(w, render(out.Reply))
				return nil
			}

			var history []domain.ChatMessage
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				_, _ = fmt.Fprint(w, "> ")
				if !scanner.Scan() {
					_, _ = fmt.Fprintln(w)
					return scanner.Err()
				}
				msg := strings.TrimSpace(scanner.Text())
				switch msg {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				out, err := uc.Execute(cmd.Context(), usecase.ChatInput{Message: msg, History: history})
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
					continue
				}
				history = out.History
				_, _ = fmt.Fprint(w, render(out.Reply))
			}
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print replies as plain Markdown")
	cmd.Flags().IntVar(&opts.Width, "width", 80, "Wrap width for rendered replies")
	return cmd
}

// markdownRenderer returns a function rendering Markdown for the terminal.
// It falls back to the raw text when rendering fails.
func markdownRenderer(raw bool, width int) func(string) string {
	plain := func(s string) string {
		return strings.TrimRight(s, "\n") + "\n"
	}
	if raw {
		return plain
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return plain
	}
	return func(s string) string {
		out, err := r.Render(s)
		if err != nil {
			return plain(s)
		}
		return out
	}
}
