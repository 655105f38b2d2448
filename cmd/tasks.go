package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/reminders/internal/hooks"
	"github.com/nibzard/reminders/internal/logging"
	"github.com/nibzard/reminders/internal/shell"
	"github.com/nibzard/reminders/internal/store"
	"github.com/nibzard/reminders/internal/todo"
	"github.com/nibzard/reminders/internal/ui"
)

// openTasks opens the configured task file and loads it. A file that does
// not exist yet yields an empty list.
func (a *app) openTasks(logger *log.Logger) (*store.File, *todo.List, error) {
	file, err := store.Open(a.cfg.DataFile, a.cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	file.Logger = logger

	list := todo.NewList()
	if err := file.Load(list); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		logger.Debug("task file does not exist yet", "path", file.Path)
	}
	return file, list, nil
}

// saveHook returns the function run after every successful save. count is
// the number of tasks that were written.
func (a *app) saveHook(file *store.File, logger *log.Logger) func(context.Context, int) error {
	return func(ctx context.Context, count int) error {
		if strings.TrimSpace(a.cfg.HookCommand) == "" {
			return nil
		}
		result, err := hooks.Invoke(ctx, hooks.Options{
			Command:  a.cfg.HookCommand,
			Event:    hooks.EventSave,
			DataFile: file.Path,
			Count:    count,
			WorkDir:  a.cfg.ProjectRoot,
		})
		if err != nil {
			return err
		}
		logger.Debug("hook ran", "command", a.cfg.HookCommand, "exit", result.ExitCode)
		return nil
	}
}

// save writes the list and runs the hook. Hook failures are logged, not
// returned.
func (a *app) save(ctx context.Context, file *store.File, list *todo.List) error {
	if err := file.Save(list); err != nil {
		return err
	}
	if err := a.saveHook(file, a.logger)(ctx, list.Count()); err != nil {
		a.logger.Warn("hook failed", "err", err)
	}
	return nil
}

// sessionLogger opens a per-session log file for the interactive commands.
// When that fails it falls back to discarding session output.
func (a *app) sessionLogger() (*log.Logger, func()) {
	session, err := logging.NewSessionLog(a.cfg.LogDir, a.cfg.DataFile)
	if err != nil {
		a.logger.Warn("session log unavailable", "err", err)
		return logging.Discard(), func() {}
	}
	a.logger.Debug("session log", "path", session.Path)
	return session.Logger(a.logOptions()), func() { session.Close() }
}

func (a *app) shellCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	logger, closeLog := a.sessionLogger()
	defer closeLog()

	file, list, err := a.openTasks(logger)
	if err != nil {
		return err
	}
	sh := shell.New(list,
		shell.WithInput(a.stdin),
		shell.WithOutput(a.stdout),
		shell.WithStore(file),
		shell.WithLogger(logger),
		shell.WithAutoSave(a.cfg.AutoSave),
		shell.WithHourFormat(a.cfg.HourFormat),
		shell.WithSaveHook(a.saveHook(file, logger)),
	)
	return sh.Run(ctx)
}

func (a *app) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	logger, closeLog := a.sessionLogger()
	defer closeLog()

	file, list, err := a.openTasks(logger)
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, list, file,
		ui.WithLogger(logger),
		ui.WithAutoSave(a.cfg.AutoSave),
		ui.WithSaveHook(a.saveHook(file, logger)),
		ui.WithTickInterval(time.Second),
	)
}

func (a *app) addCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reminders add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	dueArg := fs.String("due", "", "Due date as Month-DD-YYYY-HH-MM with optional -AM/-PM")
	if err := fs.Parse(args); err != nil {
		return err
	}
	description := strings.Join(fs.Args(), " ")

	var due *time.Time
	if *dueArg != "" {
		d, err := todo.ParseDue(*dueArg)
		if err != nil {
			return err
		}
		due = &d
	}

	file, list, err := a.openTasks(a.logger)
	if err != nil {
		return err
	}
	task, err := list.Add(description, due)
	if err != nil {
		return err
	}
	if err := a.save(ctx, file, list); err != nil {
		return err
	}
	a.logger.Info("task added", "position", list.Count())
	fmt.Fprintf(a.stdout, "Added task \"%s\" to Reminder list\n", list.Render(task))
	return nil
}

func (a *app) lsCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	_, list, err := a.openTasks(a.logger)
	if err != nil {
		return err
	}
	if list.Count() == 0 {
		fmt.Fprintln(a.stdout, "No tasks")
		return nil
	}
	for pos, task := range list.ViewAll() {
		fmt.Fprintf(a.stdout, "Task %d: %s\n", pos, list.Render(task))
	}
	return nil
}

func (a *app) doneCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reminders done <task number>")
	}
	file, list, err := a.openTasks(a.logger)
	if err != nil {
		return err
	}
	task, err := list.MarkDoneInput(args[0])
	if err != nil {
		return err
	}
	if err := a.save(ctx, file, list); err != nil {
		return err
	}
	a.logger.Info("task marked done", "input", args[0])
	fmt.Fprintf(a.stdout, "Marked task \"%s\" as done\n", list.Render(task))
	return nil
}

func (a *app) rmCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reminders rm <task number>")
	}
	file, list, err := a.openTasks(a.logger)
	if err != nil {
		return err
	}
	task, err := list.DeleteInput(args[0])
	if err != nil {
		return err
	}
	if err := a.save(ctx, file, list); err != nil {
		return err
	}
	a.logger.Info("task deleted", "input", args[0])
	fmt.Fprintf(a.stdout, "Deleted task %s: \"%s\"\n", strings.TrimSpace(args[0]), list.Render(task))
	return nil
}

func (a *app) tailCommand(ctx context.Context, args []string) error {
	// Parse tail-specific flags
	fs := flag.NewFlagSet("reminders tail", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(a.cfg.LogDir, a.cfg.DataFile)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(a.stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(a.stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(a.stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(a.stdout)
	return logging.TailLog(ctx, a.stdout, logPath, *n, *follow)
}

func (a *app) schemaCommand() error {
	_, err := a.stdout.Write(store.SchemaJSON())
	return err
}
