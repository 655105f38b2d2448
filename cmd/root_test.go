// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/reminders/internal/store"
	"github.com/nibzard/reminders/internal/todo"
)

// setupProject isolates config lookup and returns the working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	for _, name := range []string{
		"FILE", "FORMAT", "AUTO_SAVE", "HOUR_FORMAT", "HOOK",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_TIMESTAMPS", "LOG_CALLER",
	} {
		t.Setenv("REMINDERS_"+name, "")
	}
	t.Setenv("REMINDERS_LOG_DIR", filepath.Join(home, "logs"))
	wd := t.TempDir()
	t.Chdir(wd)
	return wd
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, input string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(input), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func loadTasks(t *testing.T, path string) *todo.List {
	t.Helper()
	f, err := store.Open(path, "")
	if err != nil {
		t.Fatal(err)
	}
	l := todo.NewList()
	if err := f.Load(l); err != nil {
		t.Fatalf("Load %s: %v", path, err)
	}
	return l
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	t.Run("shows help with -help flag", func(t *testing.T) {
		setupProject(t)
		r := runCLI(t, "", "-help")
		if r.err != nil {
			t.Errorf("expected no error with -help, got %v", r.err)
		}
		if !strings.Contains(r.stdout, "Usage:") || !strings.Contains(r.stdout, "-hour-format") {
			t.Errorf("usage output incomplete:\n%s", r.stdout)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		setupProject(t)
		r := runCLI(t, "", "help")
		if r.err != nil || !strings.Contains(r.stdout, "Commands:") {
			t.Errorf("got %v\n%s", r.err, r.stdout)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		setupProject(t)
		for _, args := range [][]string{{"-v"}, {"-version"}, {"version"}} {
			r := runCLI(t, "", args...)
			if r.err != nil || r.stdout != "reminders version "+Version+"\n" {
				t.Errorf("%v: got %q, %v", args, r.stdout, r.err)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		setupProject(t)
		r := runCLI(t, "", "unknown-command")
		if r.err == nil || r.err.Error() != "unknown command: unknown-command" {
			t.Errorf("expected 'unknown command' error, got %v", r.err)
		}
		if !strings.Contains(r.stderr, "Unknown command: unknown-command") {
			t.Errorf("stderr: %q", r.stderr)
		}
	})

	t.Run("invalid config is reported", func(t *testing.T) {
		setupProject(t)
		r := runCLI(t, "", "-hour-format", "7", "ls")
		if r.err == nil || !strings.Contains(r.err.Error(), "loading config") {
			t.Errorf("got %v", r.err)
		}
	})
}

func TestAddListDoneRm(t *testing.T) {
	wd := setupProject(t)
	path := filepath.Join(wd, "reminders.json")

	r := runCLI(t, "", "ls")
	if r.err != nil || r.stdout != "No tasks\n" {
		t.Fatalf("ls on missing file: %q, %v", r.stdout, r.err)
	}

	r = runCLI(t, "", "add", "Buy", "milk")
	if r.err != nil {
		t.Fatalf("add failed: %v", r.err)
	}
	if r.stdout != "Added task \"[ ] Buy milk\" to Reminder list\n" {
		t.Errorf("add output: %q", r.stdout)
	}

	r = runCLI(t, "", "add", "-due", "December-31-2099-11-59-PM", "Renew passport")
	if r.err != nil {
		t.Fatalf("add with due failed: %v", r.err)
	}
	if !strings.Contains(r.stdout, "Due December-31-2099-23-59, in ") {
		t.Errorf("add output: %q", r.stdout)
	}

	r = runCLI(t, "", "done", "1")
	if r.err != nil || r.stdout != "Marked task \"[x] Buy milk\" as done\n" {
		t.Errorf("done: %q, %v", r.stdout, r.err)
	}

	r = runCLI(t, "", "ls")
	if r.err != nil {
		t.Fatal(r.err)
	}
	if !strings.HasPrefix(r.stdout, "Task 1: [x] Buy milk\nTask 2: [ ] Renew passport: Due December-31-2099-23-59") {
		t.Errorf("ls output:\n%s", r.stdout)
	}

	r = runCLI(t, "", "rm", "1")
	if r.err != nil || r.stdout != "Deleted task 1: \"[x] Buy milk\"\n" {
		t.Errorf("rm: %q, %v", r.stdout, r.err)
	}

	l := loadTasks(t, path)
	if l.Count() != 1 {
		t.Fatalf("saved Count: got %d, want 1", l.Count())
	}
	task, _ := l.Get(1)
	if task.Description() != "Renew passport" {
		t.Errorf("remaining task: %q", task.Description())
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"empty description", []string{"add", "   "}, "description"},
		{"bad due date", []string{"add", "-due", "tomorrow", "x"}, "due date"},
		{"done without number", []string{"done"}, "usage"},
		{"done not a number", []string{"done", "first"}, "is not a task number"},
		{"done out of range", []string{"done", "3"}, "the list is empty"},
		{"rm out of range", []string{"rm", "0"}, "invalid task number 0"},
		{"ls extra args", []string{"ls", "all"}, "unexpected arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t)
			r := runCLI(t, "", tt.args...)
			if r.err == nil || !strings.Contains(r.err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", r.err, tt.wantErr)
			}
		})
	}
}

func TestFormatFlag(t *testing.T) {
	wd := setupProject(t)
	r := runCLI(t, "", "-file", "tasks.yaml", "add", "Water plants")
	if r.err != nil {
		t.Fatal(r.err)
	}
	data, err := os.ReadFile(filepath.Join(wd, "tasks.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "description: Water plants") {
		t.Errorf("yaml content:\n%s", data)
	}
}

func TestCorruptFileIsNotOverwritten(t *testing.T) {
	wd := setupProject(t)
	path := filepath.Join(wd, "reminders.json")
	corrupt := `{"schema_version": 1, "tasks": [{"is_done": true}]}`
	if err := os.WriteFile(path, []byte(corrupt), 0644); err != nil {
		t.Fatal(err)
	}
	r := runCLI(t, "", "add", "x")
	if r.err == nil {
		t.Fatal("expected load error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != corrupt {
		t.Errorf("file was modified:\n%s", data)
	}
}

func TestShellCommand(t *testing.T) {
	wd := setupProject(t)
	input := "1\nCall bank\nn\n2\n7\n"
	r := runCLI(t, input, "shell")
	if r.err != nil {
		t.Fatalf("shell failed: %v\n%s", r.err, r.stderr)
	}
	for _, want := range []string{
		"To-Do List Menu",
		`Added task "[ ] Call bank" to Reminder list`,
		"Task 1: [ ] Call bank",
		"Goodbye!",
	} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, r.stdout)
		}
	}
	if l := loadTasks(t, filepath.Join(wd, "reminders.json")); l.Count() != 1 {
		t.Errorf("auto-save: Count %d", l.Count())
	}

	// Default command is the shell; the session log holds its activity.
	r = runCLI(t, "7\n", "-auto-save=false")
	if r.err != nil || !strings.Contains(r.stdout, "Goodbye!") {
		t.Fatalf("default shell: %v\n%s", r.err, r.stdout)
	}
	r = runCLI(t, "", "tail", "-n", "5")
	if r.err != nil {
		t.Fatal(r.err)
	}
	if !strings.Contains(r.stdout, "Tailing: ") || !strings.Contains(r.stdout, "session ended") {
		t.Errorf("tail output:\n%s", r.stdout)
	}
}

func TestTailWithoutLogs(t *testing.T) {
	setupProject(t)
	r := runCLI(t, "", "tail")
	if r.err != nil || r.stdout != "No log files found.\n" {
		t.Errorf("got %q, %v", r.stdout, r.err)
	}
}

func TestHookRunsAfterSave(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell hooks are not supported on windows")
	}
	wd := setupProject(t)
	marker := filepath.Join(wd, "hook.out")
	hook := filepath.Join(wd, "hook.sh")
	script := "#!/bin/sh\necho \"$1 $3\" > " + marker + "\n"
	if err := os.WriteFile(hook, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, "", "-hook", hook, "add", "Buy milk")
	if r.err != nil {
		t.Fatal(r.err)
	}
	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	if strings.TrimSpace(string(data)) != "save 1" {
		t.Errorf("hook args: %q", data)
	}
}

func TestFailingHookIsNotFatal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell hooks are not supported on windows")
	}
	wd := setupProject(t)
	hook := filepath.Join(wd, "hook.sh")
	if err := os.WriteFile(hook, []byte("#!/bin/sh\nexit 2\n"), 0755); err != nil {
		t.Fatal(err)
	}
	r := runCLI(t, "", "-hook", hook, "add", "x")
	if r.err != nil {
		t.Fatalf("hook failure should not fail add: %v", r.err)
	}
	if !strings.Contains(r.stderr, "hook failed") {
		t.Errorf("expected hook warning on stderr: %q", r.stderr)
	}
}

func TestConfigCommand(t *testing.T) {
	setupProject(t)
	if err := os.WriteFile("reminders.toml", []byte("hour_format = 24\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r := runCLI(t, "", "-log-level", "debug", "config")
	if r.err != nil {
		t.Fatal(r.err)
	}
	for _, want := range []string{
		"reminders.toml",
		"(project file)",
		"(flag)",
		"(environment)",
		"(default)",
	} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("config output missing %q:\n%s", want, r.stdout)
		}
	}

	r = runCLI(t, "", "config", "-example")
	if r.err != nil || !strings.Contains(r.stdout, `data_file = "reminders.json"`) {
		t.Errorf("example: %v\n%s", r.err, r.stdout)
	}
}

func TestSchemaCommand(t *testing.T) {
	setupProject(t)
	r := runCLI(t, "", "schema")
	if r.err != nil {
		t.Fatal(r.err)
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(r.stdout), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if schema["$schema"] == nil {
		t.Error("schema has no $schema")
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("fresh project passes", func(t *testing.T) {
		setupProject(t)
		r := runCLI(t, "", "doctor")
		if r.err != nil {
			t.Errorf("doctor failed: %v\n%s", r.err, r.stdout)
		}
		if !strings.Contains(r.stdout, "Not found (will be created on first save)") {
			t.Errorf("doctor output:\n%s", r.stdout)
		}
	})

	t.Run("invalid task file fails", func(t *testing.T) {
		wd := setupProject(t)
		bad := `{"schema_version": 1, "tasks": [{"description": ""}]}`
		if err := os.WriteFile(filepath.Join(wd, "reminders.json"), []byte(bad), 0644); err != nil {
			t.Fatal(err)
		}
		r := runCLI(t, "", "doctor")
		if r.err == nil || !strings.Contains(r.err.Error(), "failed") {
			t.Errorf("expected failure, got %v", r.err)
		}
		if !strings.Contains(r.stdout, "tasks[0].description") {
			t.Errorf("expected violation path:\n%s", r.stdout)
		}
	})

	t.Run("missing hook fails", func(t *testing.T) {
		setupProject(t)
		r := runCLI(t, "", "-hook", "no-such-reminders-hook", "doctor")
		if r.err == nil {
			t.Errorf("expected failure\n%s", r.stdout)
		}
	})
}

func TestHookBinary(t *testing.T) {
	tests := map[string]string{
		"":                   "",
		"  ":                 "",
		"notify":             "notify",
		"/bin/hook.sh --all": "/bin/hook.sh",
	}
	for in, want := range tests {
		if got := hookBinary(in); got != want {
			t.Errorf("hookBinary(%q) = %q, want %q", in, got, want)
		}
	}
}
