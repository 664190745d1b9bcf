package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DeadlineWindow is the time a new task gets before it is due.
const DeadlineWindow = 7 * 24 * time.Hour

var (
	ErrInvalidTask     = errors.New("model: invalid task")
	ErrInvalidDeadline = errors.New("model: invalid task deadline")
)

type Task struct {
	ID        string
	Name      string
	Done      bool
	CreatedAt time.Time
	Deadline  time.Time
}

// NewTask builds a pending task created at now and due DeadlineWindow later.
func NewTask(id, name string, now time.Time) Task {
	return Task{
		ID:        id,
		Name:      name,
		Done:      false,
		CreatedAt: now,
		Deadline:  now.Add(DeadlineWindow),
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidTask)
	}
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTask)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("%w: created_at is required", ErrInvalidTask)
	}
	if t.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", ErrInvalidDeadline)
	}
	if t.Deadline.Before(t.CreatedAt) {
		return fmt.Errorf("%w: deadline %s before created_at %s", ErrInvalidDeadline,
			t.Deadline.Format(time.RFC3339), t.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// Overdue reports whether a pending task has passed its deadline.
func (t Task) Overdue(now time.Time) bool {
	return !t.Done && now.After(t.Deadline)
}

// SearchByName returns a predicate matching tasks whose name contains
// search, ignoring case. An empty search matches every task.
func SearchByName(search string) func(Task) bool {
	if search == "" {
		return func(Task) bool { return true }
	}
	needle := strings.ToLower(search)
	return func(t Task) bool {
		return strings.Contains(strings.ToLower(t.Name), needle)
	}
}

// FilterByName keeps the tasks selected by SearchByName(search), in order.
func FilterByName(tasks []Task, search string) []Task {
	match := SearchByName(search)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}
