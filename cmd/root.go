// Package cmd implements the CLI command structure for choretracker.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/choretracker-go/internal/config"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the choretracker CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("choretracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return lsCommand(ctx, cws.Config, nil, stdout, stderr)
	}
	subcommand, remaining := remaining[0], remaining[1:]

	switch subcommand {
	case "ls", "list":
		return lsCommand(ctx, cws.Config, remaining, stdout, stderr)
	case "show":
		return showCommand(ctx, cws.Config, remaining, stdout, stderr)
	case "add", "new":
		return addCommand(ctx, cws.Config, remaining, stdout, stderr)
	case "edit":
		return editCommand(ctx, cws.Config, remaining, stdout, stderr)
	case "rm", "delete":
		return rmCommand(ctx, cws.Config, remaining, stdout, stderr)
	case "request":
		return requestCommand(ctx, cws.Config, remaining, stdout, stderr)
	case "serve":
		return serveCommand(ctx, cws.Config, remaining, stderr)
	case "tui":
		return tuiCommand(ctx, cws.Config, remaining, stderr)
	case "config":
		return configCommand(cws, remaining, stdout)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "choretracker version %s\n", Version)
	return nil
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.WithSources, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("choretracker config", flag.ContinueOnError)
	fs.SetOutput(w)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Fprint(w, config.ExampleConfig())
		return nil
	}

	fmt.Fprintln(w, "Config files:")
	if len(cws.Files) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Sources:")
	width := 0
	for _, key := range config.Keys() {
		width = max(width, len(key))
	}
	for _, key := range config.Keys() {
		fmt.Fprintf(w, "  %-*s  %s\n", width, key, cws.Sources[key])
	}
	fmt.Fprintln(w)

	body, err := cws.Config.TOML()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Fprintln(w, "Effective configuration:")
	fmt.Fprint(w, body)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "choretracker - track recurring household chores")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  choretracker [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls [--where expr] [--json]   List tasks grouped by due class (default command)")
	fmt.Fprintln(w, "  show <id>                    Show one task")
	fmt.Fprintln(w, "  add --name N --due D         Create a task")
	fmt.Fprintln(w, "  edit <id> [--name N] [...]   Update a task")
	fmt.Fprintln(w, "  rm <id>...                   Delete tasks (ids may be comma-separated)")
	fmt.Fprintln(w, "  request <spec.json|->        Run a declarative request spec")
	fmt.Fprintln(w, "  serve                        Serve the demo task API over HTTP")
	fmt.Fprintln(w, "  tui                          Launch terminal UI")
	fmt.Fprintln(w, "  config [--example]           Show effective configuration")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	out := fs.Output()
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(out)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Due values (add/edit --due):")
	fmt.Fprintln(w, "  unix seconds, RFC3339, 2006-01-02, or relative +3d, -1d, +12h")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filter expressions (ls --where):")
	fmt.Fprintln(w, "  variables: "+strings.Join(whereVariables(), ", "))
	fmt.Fprintln(w, `  example:   overdue || (due_soon && name contains "Clean")`)
}

func whereVariables() []string {
	return []string{"id", "group", "name", "description", "due", "created", "modified",
		"category", "overdue", "due_soon", "due_later", "days_left", "now"}
}
