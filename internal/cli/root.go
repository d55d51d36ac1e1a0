// Package cli provides the command-line interface for taskdeck.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/domain"
	"github.com/runoshun/taskdeck/internal/tui"
)

// Command group IDs.
const (
	groupSetup     = "setup"
	groupData      = "data"
	groupAssistant = "assistant"
)

// Global flag names. main reads them before the container is built.
const (
	FlagAPIURL  = "api-url"
	FlagVerbose = "verbose"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for taskdeck.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var apiURL string
	var verbose bool

	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "Task manager client with an AI assistant",
		Long: `taskdeck manages tasks, categories and daily context entries stored
on a task backend, and asks the backend's assistant for priorities,
deadlines and summaries.

Running taskdeck without a command opens the dashboard.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().StringVar(&apiURL, FlagAPIURL, "", "Backend base URL including /api (overrides config and "+domain.EnvAPIURL+")")
	root.PersistentFlags().BoolVar(&verbose, FlagVerbose, false, "Log debug output to stderr")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupData, Title: "Data Commands:"},
		&cobra.Group{ID: groupAssistant, Title: "Assistant Commands:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	devServerCmd := newDevServerCommand(c)
	devServerCmd.GroupID = groupSetup

	// Data commands
	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupData

	categoryCmd := newCategoryCommand(c)
	categoryCmd.GroupID = groupData

	contextCmd := newContextCommand(c)
	contextCmd.GroupID = groupData

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupData

	// Assistant commands
	suggestCmd := newSuggestCommand(c)
	suggestCmd.GroupID = groupAssistant

	chatCmd := newChatCommand(c)
	chatCmd.GroupID = groupAssistant

	root.AddCommand(
		configCmd,
		devServerCmd,
		taskCmd,
		categoryCmd,
		contextCmd,
		tuiCmd,
		suggestCmd,
		chatCmd,
	)

	return root
}

// newTUICommand creates the tui command for launching the dashboard.
// This is the same as running taskdeck without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		Long:  `Open the interactive dashboard for tasks, categories and context.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// launchTUI runs the dashboard until the user quits.
func launchTUI(c *app.Container) error {
	c.SilenceStderr()
	return tui.Run(c)
}
