package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nibzard/reminders/internal/store"
	"github.com/nibzard/reminders/internal/todo"
)

// doctorCommand checks that the task file, log directory and hook are usable.
func (a *app) doctorCommand(args []string) error {
	flags := flag.NewFlagSet("reminders doctor", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	verbose := flags.Bool("v", false, "Verbose output")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	w := a.stdout
	fmt.Fprintln(w, "Reminders Doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	allOK := true

	// Config
	fmt.Fprintln(w, "Config:")
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(w, "  ✅ No config files (using defaults)")
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	fmt.Fprintln(w)

	// Task file
	fmt.Fprintf(w, "Task file: %s\n", a.cfg.DataFile)
	if !a.checkTaskFile(w, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Log directory
	fmt.Fprintf(w, "Log directory: %s\n", a.cfg.LogDir)
	if info, err := os.Stat(a.cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first session)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Hook
	fmt.Fprintln(w, "Hook:")
	if !checkBinary(w, "Command", hookBinary(a.cfg.HookCommand)) {
		allOK = false
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

func (a *app) checkTaskFile(w io.Writer, verbose bool) bool {
	file, err := store.Open(a.cfg.DataFile, a.cfg.Format)
	if err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  Format: %s\n", file.Codec.Name())

	list := todo.NewList()
	err = file.Load(list)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first save)")
		return true
	case err != nil:
		var schemaErr *store.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintln(w, "  ❌ Schema validation failed:")
			for _, v := range schemaErr.Violations {
				fmt.Fprintf(w, "     - %v\n", v)
			}
		} else {
			fmt.Fprintf(w, "  ❌ %v\n", err)
		}
		return false
	}

	fmt.Fprintf(w, "  ✅ OK (%d tasks)\n", list.Count())
	if verbose {
		for pos, task := range list.ViewAll() {
			fmt.Fprintf(w, "    %d. %s\n", pos, list.Render(task))
		}
	}
	return true
}

// hookBinary returns the executable named by a hook command line.
func hookBinary(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// checkBinary reports whether binary can be executed. An empty binary is
// not configured, which is fine.
func checkBinary(w io.Writer, label, binary string) bool {
	if binary == "" {
		fmt.Fprintf(w, "  %s: (none)\n", label)
		return true
	}
	fmt.Fprintf(w, "  %s: %s\n", label, binary)
	if info, err := os.Stat(binary); err == nil {
		if info.IsDir() {
			fmt.Fprintln(w, "  ❌ Path is a directory")
			return false
		}
		if !isExecutablePath(binary, info) {
			fmt.Fprintln(w, "  ❌ Not executable")
			return false
		}
		fmt.Fprintln(w, "  ✅ OK")
		return true
	}

	resolved, err := exec.LookPath(binary)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Not found: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  ✅ OK (found in PATH: %s)\n", resolved)
	return true
}

func isExecutablePath(path string, info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return isWindowsExecutable(path)
	}
	return info.Mode().Perm()&0111 != 0
}

func isWindowsExecutable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	for _, e := range strings.Split(pathext, ";") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && strings.TrimPrefix(e, ".") == strings.TrimPrefix(ext, ".") {
			return true
		}
	}
	return false
}
