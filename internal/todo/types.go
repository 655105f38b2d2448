package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error kinds returned by the package. Use errors.Is to test for them.
var (
	// ErrInvalidInput reports malformed or missing required data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange reports a position outside the current list bounds.
	ErrOutOfRange = errors.New("position out of range")
)

// PositionError describes a rejected task position.
type PositionError struct {
	Input    string // raw caller input, empty when an int was passed directly
	Position int
	Count    int
	Err      error
}

func (e *PositionError) Error() string {
	if errors.Is(e.Err, ErrInvalidInput) {
		return fmt.Sprintf("%q is not a task number", e.Input)
	}
	if e.Count == 0 {
		return fmt.Sprintf("invalid task number %d: the list is empty", e.Position)
	}
	return fmt.Sprintf("invalid task number %d: choose between 1 and %d", e.Position, e.Count)
}

// Unwrap returns the underlying error kind.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// RecordError describes a record rejected by Deserialize.
type RecordError struct {
	Index int    // 0-based record index
	Field string // record field name
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("tasks[%d].%s: %s", e.Index, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Task is a single reminder.
type Task struct {
	description string
	done        bool
	due         *time.Time
}

// NewTask creates a pending task. due may be nil for a task without a
// deadline.
func NewTask(description string, due *time.Time) (*Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("task description is empty: %w", ErrInvalidInput)
	}
	t := &Task{description: description}
	if due != nil {
		d := *due
		t.due = &d
	}
	return t, nil
}

// Description returns the task text.
func (t *Task) Description() string {
	return t.description
}

// Done reports whether the task has been completed.
func (t *Task) Done() bool {
	return t.done
}

// Due returns the due date and whether one is set.
func (t *Task) Due() (time.Time, bool) {
	if t.due == nil {
		return time.Time{}, false
	}
	return *t.due, true
}

// MarkDone completes the task. Calling it again has no effect.
func (t *Task) MarkDone() {
	t.done = true
}

// Render formats the task for display, computing remaining time against now.
func (t *Task) Render(now time.Time) string {
	var b strings.Builder
	if t.done {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(t.description)

	if t.due == nil {
		return b.String()
	}
	b.WriteString(": Due ")
	b.WriteString(FormatDue(*t.due))
	if t.done {
		return b.String()
	}

	label := "in"
	secs, late := secondsUntil(now, *t.due)
	if late {
		label = "late by"
	}
	days, hours, minutes := splitSeconds(secs)
	fmt.Fprintf(&b, ", %s %d days, %d hours, and %d minutes.", label, days, hours, minutes)
	return b.String()
}

// String renders the task against the current wall clock.
func (t *Task) String() string {
	return t.Render(time.Now())
}

// secondsUntil returns the whole seconds between from and to, truncated,
// and whether to is before from. Sub saturates beyond about 292 years, so
// this works from Unix seconds.
func secondsUntil(from, to time.Time) (secs int64, late bool) {
	secs = to.Unix() - from.Unix()
	nanos := to.Nanosecond() - from.Nanosecond()
	late = secs < 0 || (secs == 0 && nanos < 0)
	if late {
		secs = -secs
		nanos = -nanos
	}
	if nanos < 0 {
		secs--
	}
	return secs, late
}

// splitSeconds decomposes a non-negative second count into whole days, the
// remaining whole hours and the remaining whole minutes.
func splitSeconds(secs int64) (days, hours, minutes int64) {
	days = secs / 86400
	secs %= 86400
	hours = secs / 3600
	secs %= 3600
	minutes = secs / 60
	return days, hours, minutes
}

// Record is the flat, serializer-neutral form of a Task.
type Record struct {
	Description string `json:"description" toml:"description" yaml:"description"`
	Done        bool   `json:"is_done" toml:"is_done" yaml:"is_done"`
	DueDate     string `json:"due_date,omitempty" toml:"due_date,omitempty" yaml:"due_date,omitempty"`
}

// Record converts the task into its persisted form.
func (t *Task) Record() Record {
	r := Record{Description: t.description, Done: t.done}
	if t.due != nil {
		r.DueDate = t.due.Format(RecordTimeLayout)
	}
	return r
}

// taskFromRecord rebuilds a task, reporting problems against record index i.
func taskFromRecord(i int, r Record) (*Task, error) {
	if strings.TrimSpace(r.Description) == "" {
		return nil, &RecordError{Index: i, Field: "description", Err: fmt.Errorf("missing required field: %w", ErrInvalidInput)}
	}
	var due *time.Time
	if r.DueDate != "" {
		parsed, err := ParseRecordTime(r.DueDate)
		if err != nil {
			return nil, &RecordError{Index: i, Field: "due_date", Err: err}
		}
		due = &parsed
	}
	t, err := NewTask(r.Description, due)
	if err != nil {
		return nil, &RecordError{Index: i, Field: "description", Err: err}
	}
	t.done = r.Done
	return t, nil
}
