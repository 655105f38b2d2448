// Package logging provides tests for logger construction and session logs.
package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"xml", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.input); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("warn", "logfmt", false, false))

	logger.Info("hidden", "task", 1)
	logger.Warn("shown", "task", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "task=2") {
		t.Errorf("expected warn message with fields, got %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, OptionsFromConfig("debug", "json", false, false))
	logger.Debug("task added", "position", 3)

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"position":3`) {
		t.Errorf("expected position field, got %q", out)
	}
}

func TestNewSessionLog(t *testing.T) {
	base := t.TempDir()
	dataFile := filepath.Join(t.TempDir(), "My Tasks.json")

	s, err := NewSessionLog(base, dataFile)
	if err != nil {
		t.Fatalf("NewSessionLog failed: %v", err)
	}
	defer s.Close()

	if filepath.Dir(s.Dir) != base {
		t.Errorf("Dir %q not under %q", s.Dir, base)
	}
	if !strings.HasPrefix(filepath.Base(s.Dir), "My_Tasks-") {
		t.Errorf("unexpected slug dir %q", filepath.Base(s.Dir))
	}
	if filepath.Ext(s.Path) != ".log" {
		t.Errorf("Path extension: got %q", s.Path)
	}

	s.Logger(OptionsFromConfig("info", "text", false, false)).Info("session started")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("log file content: %q", data)
	}
}

func TestNewSessionLogEmptyBase(t *testing.T) {
	if _, err := NewSessionLog("", "tasks.json"); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("got %v, want empty dir error", err)
	}
}

func TestSessionLogCloseNil(t *testing.T) {
	var s *SessionLog
	if err := s.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestFindLogDirStablePerFile(t *testing.T) {
	base := t.TempDir()
	a1, _ := FindLogDir(base, "/tmp/a/tasks.json")
	a2, _ := FindLogDir(base, "/tmp/a/tasks.json")
	b, _ := FindLogDir(base, "/tmp/b/tasks.json")

	if a1 != a2 {
		t.Errorf("same file gave different dirs: %q vs %q", a1, a2)
	}
	if a1 == b {
		t.Errorf("different files share a dir: %q", a1)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"reminders":    "reminders",
		"My Tasks":     "My_Tasks",
		"a//b??c":      "a_b_c",
		"   ":          "reminders",
		"___":          "reminders",
		"work.v2-list": "work.v2-list",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHashPath(t *testing.T) {
	h := hashPath("/tmp/tasks.json")
	if len(h) != 8 {
		t.Errorf("hash length: got %d, want 8", len(h))
	}
	if h != hashPath("/tmp/tasks.json") {
		t.Error("hash is not deterministic")
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "none"))
		if err != nil || got != "" {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("picks newest log file", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "20260101-000000-1.log")
		newer := filepath.Join(dir, "20260102-000000-2.log")
		other := filepath.Join(dir, "notes.txt")
		for _, p := range []string{old, newer, other} {
			if err := os.WriteFile(p, []byte("x\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		now := time.Now()
		os.Chtimes(old, now.Add(-time.Hour), now.Add(-time.Hour))
		os.Chtimes(newer, now, now)
		os.Chtimes(other, now.Add(time.Hour), now.Add(time.Hour))

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("FindLatestLog failed: %v", err)
		}
		if got != newer {
			t.Errorf("got %q, want %q", got, newer)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		n    int
		want string
	}{
		{0, "one\ntwo\nthree\nfour\n"},
		{2, "three\nfour\n"},
		{4, "one\ntwo\nthree\nfour\n"},
		{10, "one\ntwo\nthree\nfour\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
			t.Fatalf("TailLog(n=%d) failed: %v", tt.n, err)
		}
		if buf.String() != tt.want {
			t.Errorf("TailLog(n=%d) = %q, want %q", tt.n, buf.String(), tt.want)
		}
	}
}

func TestTailLogWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.log")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree"), 0644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := TailLog(context.Background(), &buf, path, 1, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "three" {
		t.Errorf("got %q, want %q", buf.String(), "three")
	}
}

func TestTailLogFollowStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.log")
	if err := os.WriteFile(path, []byte("start\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	if err := TailLog(ctx, &buf, path, 0, true); err != nil {
		t.Fatalf("TailLog failed: %v", err)
	}
	if buf.String() != "start\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestTailLogMissingFile(t *testing.T) {
	err := TailLog(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "x.log"), 0, false)
	if err == nil {
		t.Error("expected error for missing file")
	}
}
