// Package main is the entry point for the taskdeck CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/runoshun/taskdeck/internal/app"
	"github.com/runoshun/taskdeck/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// The container needs the global flags before cobra parses them.
	container, err := app.New(cwd, parseGlobalFlags(args))
	if err != nil {
		// Help, version and the config template work without a container,
		// so a broken config file can still be replaced.
		if canRunWithoutContainer(args) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	return cli.NewRootCommand(container, version).Execute()
}

// parseGlobalFlags extracts the persistent root flags from args.
// Parsing stops at "--".
func parseGlobalFlags(args []string) app.Options {
	var opts app.Options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		switch name {
		case cli.FlagAPIURL:
			if !hasValue && i+1 < len(args) {
				i++
				value = args[i]
			}
			opts.BaseURL = value
		case cli.FlagVerbose:
			opts.Verbose = true
			if hasValue {
				opts.Verbose, _ = strconv.ParseBool(value)
			}
		}
	}
	return opts
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "completion":
		return true
	case "config":
		return len(args) > 1 && args[1] == "template"
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
