// Package hooks runs the user's external command after the task file changes.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// waitDelay bounds how long Invoke waits for output after the hook is killed.
const waitDelay = time.Second

// Events passed as the first hook argument.
const (
	EventSave = "save"
)

// Options configures a hook invocation.
type Options struct {
	// Command is the hook command line. Extra words are passed as leading
	// arguments before the event arguments.
	Command  string
	Event    string
	DataFile string
	Count    int
	WorkDir  string
}

// Result describes a hook run.
type Result struct {
	Ran      bool
	ExitCode int
	Output   string
}

// ExitError reports a hook that exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Output  string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("hook %s exited with code %d", e.Command, e.Code)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + firstLine(out)
	}
	return msg
}

// Invoke runs Command <event> <data-file> <count>. An empty command is a
// no-op. The hook inherits no stdin; combined output is captured.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	fields := strings.Fields(opts.Command)
	if len(fields) == 0 {
		return Result{}, nil
	}
	if opts.DataFile == "" {
		return Result{}, fmt.Errorf("hook %s: data file is empty", fields[0])
	}
	event := opts.Event
	if event == "" {
		event = EventSave
	}

	args := append(fields[1:], event, opts.DataFile, strconv.Itoa(opts.Count))
	cmd := exec.CommandContext(ctx, fields[0], args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	result := Result{Ran: true, Output: out.String()}
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("hook %s: %w", fields[0], ctxErr)
	}
	code, ok := exitCodeFromError(err)
	if !ok {
		return Result{Output: result.Output}, fmt.Errorf("run hook %s: %w", fields[0], err)
	}
	result.ExitCode = code
	return result, &ExitError{Command: fields[0], Code: code, Output: result.Output}
}

func exitCodeFromError(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
