// Package shell implements the numbered-menu session over a task list.
//
// Each menu command maps to one operation on the list or the task file.
// Prompts that take a value re-ask until the input is valid, printing the
// reason each time. End of input ends the session the same way Quit does.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/reminders/internal/store"
	"github.com/nibzard/reminders/internal/todo"
)

// Shell runs the interactive menu.
type Shell struct {
	list       *todo.List
	in         *bufio.Reader
	out        io.Writer
	file       *store.File
	logger     *log.Logger
	now        func() time.Time
	autoSave   bool
	hourFormat int
	onSave     func(ctx context.Context, count int) error

	lines chan inputLine
	dirty bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithInput sets where answers are read from (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = bufio.NewReader(r) }
}

// WithOutput sets where prompts are written (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithStore enables Save and Reload against f.
func WithStore(f *store.File) Option {
	return func(s *Shell) { s.file = f }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for prompt defaults such as the year.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) {
		if now != nil {
			s.now = now
		}
	}
}

// WithAutoSave saves on quit when the list has unsaved changes.
func WithAutoSave(on bool) Option {
	return func(s *Shell) { s.autoSave = on }
}

// WithHourFormat selects 12-hour (with AM/PM) or 24-hour due time entry.
func WithHourFormat(hours int) Option {
	return func(s *Shell) {
		if hours == 12 || hours == 24 {
			s.hourFormat = hours
		}
	}
}

// WithSaveHook runs fn with the saved task count after every successful
// save. Its error is reported but does not fail the save.
func WithSaveHook(fn func(ctx context.Context, count int) error) Option {
	return func(s *Shell) { s.onSave = fn }
}

// New returns a shell over list.
func New(list *todo.List, opts ...Option) *Shell {
	s := &Shell{
		list:       list,
		in:         bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		logger:     log.New(io.Discard),
		now:        list.Now,
		hourFormat: 12,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the menu and dispatches commands until Quit, end of input or
// ctx is cancelled. Cancellation interrupts a pending prompt and ends the
// session like Quit, auto-save included, before returning ctx.Err().
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Info("session started", "tasks", s.list.Count())
	s.startReader(ctx)
	for {
		s.showMenu()
		line, err := s.prompt(ctx, fmt.Sprintf("Choose an option (1-%d): ", len(Commands)))
		if err != nil {
			return s.stop(ctx, err)
		}

		cmd, ok := ParseCommand(line)
		if !ok {
			s.printf("Invalid option. Please choose a number from 1 to %d.\n", len(Commands))
			continue
		}
		s.logger.Debug("command", "name", cmd.String())
		if cmd == CommandQuit {
			return s.quit(ctx)
		}

		if err := s.dispatch(ctx, cmd); err != nil {
			return s.stop(ctx, err)
		}
	}
}

// stop ends the session after a prompt failed with err.
func (s *Shell) stop(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, io.EOF):
		s.println()
		return s.quit(ctx)
	case ctx.Err() != nil:
		s.println()
		s.logger.Info("session interrupted")
		if qerr := s.quit(context.WithoutCancel(ctx)); qerr != nil {
			return errors.Join(err, qerr)
		}
		return err
	default:
		return err
	}
}

func (s *Shell) dispatch(ctx context.Context, cmd Command) error {
	switch cmd {
	case CommandAdd:
		return s.add(ctx)
	case CommandView:
		s.view()
		return nil
	case CommandMarkDone:
		return s.markDone(ctx)
	case CommandDelete:
		return s.delete(ctx)
	case CommandSave:
		s.save(ctx)
		return nil
	case CommandReload:
		s.reload()
		return nil
	default:
		return fmt.Errorf("unhandled command %v", cmd)
	}
}

func (s *Shell) showMenu() {
	s.printf("\nTo-Do List Menu\n")
	for _, c := range Commands {
		s.printf("[%d] %s\n", int(c), c)
	}
}

func (s *Shell) add(ctx context.Context) error {
	var description string
	for {
		line, err := s.prompt(ctx, "What is the task? ")
		if err != nil {
			return err
		}
		description = strings.TrimSpace(line)
		if description != "" {
			break
		}
		s.printf("The task needs a description.\n")
	}

	wantDue, err := s.askYesNo(ctx, "Add a due date? (y/n) ")
	if err != nil {
		return err
	}
	var due *time.Time
	if wantDue {
		d, err := s.askDue(ctx)
		if err != nil {
			return err
		}
		due = &d
	}

	task, err := s.list.Add(description, due)
	if err != nil {
		s.printf("%v\n", err)
		return nil
	}
	s.dirty = true
	s.logger.Info("task added", "position", s.list.Count(), "due", due != nil)
	s.printf("Added task \"%s\" to Reminder list\n", s.list.Render(task))
	return nil
}

func (s *Shell) view() {
	if s.list.Count() == 0 {
		s.printf("\nNo tasks\n")
		return
	}
	s.println()
	for pos, task := range s.list.ViewAll() {
		s.printf("Task %d: %s\n", pos, s.list.Render(task))
	}
}

func (s *Shell) markDone(ctx context.Context) error {
	if s.list.Count() == 0 {
		s.printf("\nNo tasks\n")
		return nil
	}
	s.view()
	for {
		line, err := s.prompt(ctx, "\nEnter task number to mark as done: ")
		if err != nil {
			return err
		}
		task, err := s.list.MarkDoneInput(line)
		if err != nil {
			s.logger.Debug("mark done rejected", "input", line, "err", err)
			s.printf("%v\n", err)
			continue
		}
		s.dirty = true
		s.logger.Info("task marked done", "input", strings.TrimSpace(line))
		s.printf("Marked task \"%s\" as done\n", s.list.Render(task))
		return nil
	}
}

func (s *Shell) delete(ctx context.Context) error {
	if s.list.Count() == 0 {
		s.printf("\nNo tasks to delete\n")
		return nil
	}
	s.view()
	for {
		line, err := s.prompt(ctx, "\nWhich task would you like to delete? ")
		if err != nil {
			return err
		}
		if _, err := s.list.DeleteInput(line); err != nil {
			s.logger.Debug("delete rejected", "input", line, "err", err)
			s.printf("%v\n", err)
			continue
		}
		s.dirty = true
		s.logger.Info("task deleted", "input", strings.TrimSpace(line))
		s.printf("Deleted task %s\n", strings.TrimSpace(line))
		return nil
	}
}

func (s *Shell) save(ctx context.Context) bool {
	if s.file == nil {
		s.printf("No task file configured.\n")
		return false
	}
	if err := s.file.Save(s.list); err != nil {
		s.logger.Error("save failed", "path", s.file.Path, "err", err)
		s.printf("Could not save: %v\n", err)
		return false
	}
	s.dirty = false
	s.logger.Info("saved", "path", s.file.Path, "tasks", s.list.Count())
	s.printf("Saved %d task(s) to %s\n", s.list.Count(), s.file.Path)

	if s.onSave != nil {
		if err := s.onSave(ctx, s.list.Count()); err != nil {
			s.logger.Warn("save hook failed", "err", err)
			s.printf("Hook failed: %v\n", err)
		}
	}
	return true
}

func (s *Shell) reload() {
	if s.file == nil {
		s.printf("No task file configured.\n")
		return
	}
	if err := s.file.Load(s.list); err != nil {
		s.logger.Warn("reload failed", "path", s.file.Path, "err", err)
		s.printf("Could not reload: %v\n", err)
		return
	}
	s.dirty = false
	s.logger.Info("reloaded", "path", s.file.Path, "tasks", s.list.Count())
	s.printf("Reloaded %d task(s) from %s\n", s.list.Count(), s.file.Path)
}

func (s *Shell) quit(ctx context.Context) error {
	if s.autoSave && s.dirty && s.file != nil {
		if !s.save(ctx) {
			return fmt.Errorf("unsaved changes could not be written to %s", s.file.Path)
		}
	}
	s.logger.Info("session ended", "tasks", s.list.Count())
	s.printf("Goodbye!\n")
	return nil
}

// Dirty reports whether the list has changes not yet saved by this shell.
func (s *Shell) Dirty() bool {
	return s.dirty
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println() {
	fmt.Fprintln(s.out)
}
