package todo

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// List is an ordered collection of tasks addressed by 1-based position.
// It is not safe for concurrent use.
type List struct {
	tasks []*Task
	now   func() time.Time
}

// ListOption configures a List.
type ListOption func(*List)

// WithClock sets the time source used by Now and RenderAt.
func WithClock(now func() time.Time) ListOption {
	return func(l *List) {
		if now != nil {
			l.now = now
		}
	}
}

// NewList returns an empty list.
func NewList(opts ...ListOption) *List {
	l := &List{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Now returns the list clock's current time.
func (l *List) Now() time.Time {
	return l.now()
}

// Render renders t against the list clock.
func (l *List) Render(t *Task) string {
	return t.Render(l.now())
}

// Add appends a new task and returns it.
func (l *List) Add(description string, due *time.Time) (*Task, error) {
	t, err := NewTask(description, due)
	if err != nil {
		return nil, err
	}
	l.tasks = append(l.tasks, t)
	return t, nil
}

// Count returns the number of tasks.
func (l *List) Count() int {
	return len(l.tasks)
}

// ViewAll yields (position, task) pairs in insertion order. The sequence
// reflects the list at the time it is ranged over and may be reused.
func (l *List) ViewAll() iter.Seq2[int, *Task] {
	return func(yield func(int, *Task) bool) {
		for i, t := range l.tasks {
			if !yield(i+1, t) {
				return
			}
		}
	}
}

// Get returns the task at position.
func (l *List) Get(position int) (*Task, error) {
	i, err := l.resolve(position)
	if err != nil {
		return nil, err
	}
	return l.tasks[i], nil
}

// MarkDone completes the task at position and returns it.
func (l *List) MarkDone(position int) (*Task, error) {
	t, err := l.Get(position)
	if err != nil {
		return nil, err
	}
	t.MarkDone()
	return t, nil
}

// Delete removes the task at position. Later tasks shift down by one.
func (l *List) Delete(position int) error {
	i, err := l.resolve(position)
	if err != nil {
		return err
	}
	copy(l.tasks[i:], l.tasks[i+1:])
	l.tasks[len(l.tasks)-1] = nil
	l.tasks = l.tasks[:len(l.tasks)-1]
	return nil
}

// MarkDoneInput parses a user-typed position and marks that task done.
func (l *List) MarkDoneInput(input string) (*Task, error) {
	p, err := ParsePosition(input)
	if err != nil {
		return nil, err
	}
	return l.MarkDone(p)
}

// DeleteInput parses a user-typed position and deletes that task. It
// returns the removed task so callers can confirm what went.
func (l *List) DeleteInput(input string) (*Task, error) {
	p, err := ParsePosition(input)
	if err != nil {
		return nil, err
	}
	t, err := l.Get(p)
	if err != nil {
		return nil, err
	}
	return t, l.Delete(p)
}

func (l *List) resolve(position int) (int, error) {
	if position < 1 || position > len(l.tasks) {
		return 0, &PositionError{Position: position, Count: len(l.tasks), Err: ErrOutOfRange}
	}
	return position - 1, nil
}

// ParsePosition parses a task number typed by the user.
func ParsePosition(input string) (int, error) {
	s := strings.TrimSpace(input)
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, &PositionError{Input: s, Err: ErrInvalidInput}
	}
	return p, nil
}

// Serialize returns one record per task in list order.
func (l *List) Serialize() []Record {
	records := make([]Record, 0, len(l.tasks))
	for _, t := range l.tasks {
		records = append(records, t.Record())
	}
	return records
}

// Deserialize replaces the list contents with records. If any record is
// invalid the list is left unchanged and the first problem is returned.
func (l *List) Deserialize(records []Record) error {
	tasks := make([]*Task, 0, len(records))
	for i, r := range records {
		t, err := taskFromRecord(i, r)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	l.tasks = tasks
	return nil
}
