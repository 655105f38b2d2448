// Package ui provides the optional full-screen terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/reminders/internal/store"
	"github.com/nibzard/reminders/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	logger       *log.Logger
	autoSave     bool
	onSave       func(ctx context.Context, count int) error
	tickInterval time.Duration
}

// WithLogger sets the logger for list changes and file errors.
func WithLogger(l *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAutoSave saves unsaved changes when the TUI exits.
func WithAutoSave(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.autoSave = enabled
	}
}

// WithSaveHook runs fn with the saved task count after each successful save.
func WithSaveHook(fn func(ctx context.Context, count int) error) TUIOption {
	return func(c *tuiConfig) {
		c.onSave = fn
	}
}

// WithTickInterval sets how often due times are re-rendered.
func WithTickInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// RunTUI edits list in a full-screen terminal UI. file may be nil, in which
// case saving is unavailable.
func RunTUI(ctx context.Context, list *todo.List, file *store.File, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(ctx, list, file, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*tuiModel); ok {
		return m.finish()
	}
	return nil
}

type mode int

const (
	modeList mode = iota
	modeAddDescription
	modeAddDue
)

type tuiModel struct {
	ctx    context.Context
	cfg    tuiConfig
	list   *todo.List
	file   *store.File
	mode   mode
	input  textinput.Model
	cursor int

	pendingDescription string
	confirmDelete      bool
	showHelp           bool
	status             string
	dirty              bool
}

type tickMsg time.Time

type hookDoneMsg struct {
	err error
}

func newTUIModel(ctx context.Context, list *todo.List, file *store.File, opts ...TUIOption) *tuiModel {
	cfg := tuiConfig{
		logger:       log.New(io.Discard),
		tickInterval: time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	return &tuiModel{
		ctx:    ctx,
		cfg:    cfg,
		list:   list,
		file:   file,
		input:  ti,
		status: "Press a to add, x to mark done, d to delete, ? for help.",
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tickCmd(m.cfg.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.mode != modeList:
			return m.updateInput(msg)
		case m.confirmDelete:
			return m.updateDeleteConfirm(msg.String())
		default:
			return m.updateList(msg.String())
		}
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}
	case tickMsg:
		return m, tickCmd(m.cfg.tickInterval)
	case hookDoneMsg:
		if msg.err != nil {
			m.cfg.logger.Warn("save hook failed", "err", msg.err)
			m.status = fmt.Sprintf("Hook failed: %v", msg.err)
		}
	}
	return m, nil
}

func (m *tuiModel) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Count()-1 {
			m.cursor++
		}
	case "?", "h":
		m.showHelp = !m.showHelp
	case "a":
		m.mode = modeAddDescription
		m.input.Placeholder = "What is the task?"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Enter the task description (esc to cancel)."
	case "x", " ":
		task, err := m.list.MarkDone(m.cursor + 1)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.dirty = true
		m.cfg.logger.Info("task marked done", "position", m.cursor+1)
		m.status = fmt.Sprintf("Marked task %q as done", task.Description())
	case "d":
		if m.list.Count() == 0 {
			m.status = "No tasks to delete"
			return m, nil
		}
		m.confirmDelete = true
		m.status = fmt.Sprintf("Delete task %d? (y/n)", m.cursor+1)
	case "s":
		return m, m.save()
	case "r":
		m.reload()
	}
	return m, nil
}

func (m *tuiModel) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	m.confirmDelete = false
	if key != "y" && key != "Y" {
		m.status = "Delete cancelled"
		return m, nil
	}
	pos := m.cursor + 1
	if err := m.list.Delete(pos); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.dirty = true
	m.cfg.logger.Info("task deleted", "position", pos)
	m.status = fmt.Sprintf("Deleted task %d", pos)
	if m.cursor >= m.list.Count() && m.cursor > 0 {
		m.cursor--
	}
	return m, nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.resetInput()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if m.mode == modeAddDescription {
			if value == "" {
				m.status = "The task needs a description."
				return m, nil
			}
			m.pendingDescription = value
			m.mode = modeAddDue
			m.input.SetValue("")
			m.input.Placeholder = "October-21-2026-05-30-PM"
			m.status = "Enter a due date, or leave empty for none."
			return m, nil
		}
		m.addTask(value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) addTask(dueInput string) {
	var due *time.Time
	if dueInput != "" {
		d, err := todo.ParseDue(dueInput)
		if err != nil {
			m.status = err.Error()
			return
		}
		due = &d
	}
	task, err := m.list.Add(m.pendingDescription, due)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.dirty = true
	m.cursor = m.list.Count() - 1
	m.cfg.logger.Info("task added", "position", m.list.Count(), "due", due != nil)
	m.status = fmt.Sprintf("Added task %q", task.Description())
	m.resetInput()
}

func (m *tuiModel) resetInput() {
	m.mode = modeList
	m.pendingDescription = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *tuiModel) save() tea.Cmd {
	if m.file == nil {
		m.status = "No task file configured."
		return nil
	}
	if err := m.file.Save(m.list); err != nil {
		m.cfg.logger.Error("save failed", "path", m.file.Path, "err", err)
		m.status = fmt.Sprintf("Could not save: %v", err)
		return nil
	}
	m.dirty = false
	m.cfg.logger.Info("saved", "path", m.file.Path, "tasks", m.list.Count())
	m.status = fmt.Sprintf("Saved %d task(s) to %s", m.list.Count(), m.file.Path)

	if m.cfg.onSave == nil {
		return nil
	}
	ctx, hook, count := m.ctx, m.cfg.onSave, m.list.Count()
	return func() tea.Msg {
		return hookDoneMsg{err: hook(ctx, count)}
	}
}

func (m *tuiModel) reload() {
	if m.file == nil {
		m.status = "No task file configured."
		return
	}
	if err := m.file.Load(m.list); err != nil {
		m.cfg.logger.Warn("reload failed", "path", m.file.Path, "err", err)
		m.status = fmt.Sprintf("Could not reload: %v", err)
		return
	}
	m.dirty = false
	if m.cursor >= m.list.Count() {
		m.cursor = max(m.list.Count()-1, 0)
	}
	m.status = fmt.Sprintf("Reloaded %d task(s)", m.list.Count())
}

// finish saves outstanding changes when auto-save is enabled.
func (m *tuiModel) finish() error {
	if !m.cfg.autoSave || !m.dirty || m.file == nil {
		return nil
	}
	if err := m.file.Save(m.list); err != nil {
		return fmt.Errorf("save on exit: %w", err)
	}
	m.dirty = false
	if m.cfg.onSave != nil {
		if err := m.cfg.onSave(m.ctx, m.list.Count()); err != nil {
			m.cfg.logger.Warn("save hook failed", "err", err)
		}
	}
	return nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.file)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.dirty)
		return b.String()
	}

	writeTasks(&b, m.list, m.cursor)
	switch m.mode {
	case modeAddDescription:
		b.WriteString("New task: " + m.input.View() + "\n\n")
	case modeAddDue:
		b.WriteString(fmt.Sprintf("Due date for %q: %s\n\n", m.pendingDescription, m.input.View()))
	}
	if m.status != "" {
		b.WriteString(m.status + "\n\n")
	}
	writeFooter(&b, m.dirty)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder, file *store.File) {
	title := "Reminders"
	if file != nil {
		title += " - " + file.Path
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeTasks(b *strings.Builder, list *todo.List, cursor int) {
	if list.Count() == 0 {
		b.WriteString("  No tasks\n\n")
		return
	}
	for pos, task := range list.ViewAll() {
		marker := "  "
		if pos-1 == cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%d. %s\n", marker, pos, list.Render(task)))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k        Move up\n")
	b.WriteString("  down, j      Move down\n")
	b.WriteString("  a            Add a task\n")
	b.WriteString("  x, space     Mark task as done\n")
	b.WriteString("  d            Delete task (confirm with y)\n")
	b.WriteString("  s            Save\n")
	b.WriteString("  r            Reload from file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
}

func writeFooter(b *strings.Builder, dirty bool) {
	footer := "Press ? for help | q to quit"
	if dirty {
		footer += " | unsaved changes"
	}
	b.WriteString(footer + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
