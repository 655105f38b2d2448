// Package cmd implements the CLI command structure for reminders.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/reminders/internal/config"
	"github.com/nibzard/reminders/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the streams and configuration shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
}

// Run executes the reminders CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("reminders", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a := &app{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		cfg:     cws.Config,
		sources: cws,
	}
	a.logger = logging.New(stderr, a.logOptions())

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "shell" as default
	subcommand := "shell"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	a.logger.Debug("command", "name", subcommand, "file", a.cfg.DataFile)

	// Execute the subcommand
	switch subcommand {
	case "shell":
		return a.shellCommand(ctx, remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "add":
		return a.addCommand(ctx, remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "done":
		return a.doneCommand(ctx, remainingArgs)
	case "rm", "delete":
		return a.rmCommand(ctx, remainingArgs)
	case "tail":
		return a.tailCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "schema":
		return a.schemaCommand()
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func (a *app) logOptions() logging.Options {
	return logging.OptionsFromConfig(a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller)
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "reminders version %s\n", Version)
	return nil
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("reminders config", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	if len(a.sources.Files) == 0 {
		fmt.Fprintln(a.stdout, "Config files: none")
	} else {
		fmt.Fprintln(a.stdout, "Config files:")
		for _, f := range a.sources.Files {
			fmt.Fprintf(a.stdout, "  %s\n", f)
		}
	}
	fmt.Fprintln(a.stdout)
	for _, field := range config.Fields() {
		fmt.Fprintf(a.stdout, "%-15s = %-40v (%s)\n", field, formatValue(a.cfg.Value(field)), a.sources.Sources[field])
	}
	return nil
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Reminders - a task list with due dates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  reminders [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell              Interactive menu (default command)")
	fmt.Fprintln(w, "  tui                Full-screen terminal UI")
	fmt.Fprintln(w, "  add [-due D] TEXT  Add a task; D is Month-DD-YYYY-HH-MM[-AM|PM]")
	fmt.Fprintln(w, "  ls                 List tasks")
	fmt.Fprintln(w, "  done N             Mark task N as done")
	fmt.Fprintln(w, "  rm N               Delete task N")
	fmt.Fprintln(w, "  tail [-n N] [-f]   Show the latest session log")
	fmt.Fprintln(w, "  config [-example]  Show effective configuration and sources")
	fmt.Fprintln(w, "  schema             Print the task file JSON schema")
	fmt.Fprintln(w, "  doctor             Check config, task file and hook")
	fmt.Fprintln(w, "  version            Show version information")
	fmt.Fprintln(w, "  help               Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
