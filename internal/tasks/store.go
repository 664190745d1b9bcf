package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/tarefa/internal/model"
	"github.com/sandeepkv93/tarefa/internal/storage"
)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the current state. Dispatch runs the reducer and then writes
// the task list to the repository whenever it changed, holding a single
// lock across both steps.
type Store struct {
	mu     sync.Mutex
	state  State
	repo   storage.Repository
	now    func() time.Time
	logger *slog.Logger
}

// NewStore wraps initial. A nil repo keeps state in memory only.
func NewStore(initial State, repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		state:  initial,
		repo:   repo,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action and returns the new state. A persistence error
// is returned alongside the new state, which is kept regardless.
func (s *Store) Dispatch(ctx context.Context, action Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if add, ok := action.(Add); ok && add.At.IsZero() {
		add.At = s.now().UTC()
		action = add
	}

	prev := s.state
	next := Reduce(prev, action)
	s.state = next

	if s.repo == nil || sameTasks(prev.Tasks, next.Tasks) {
		return next, nil
	}
	if err := s.repo.SaveTasks(ctx, ToRecords(next.Tasks), next.NextID); err != nil {
		s.logger.Error("persist tasks failed", "action", kindOf(action), "tasks", len(next.Tasks), "err", err)
		return next, fmt.Errorf("persist tasks: %w", err)
	}
	s.logger.Debug("tasks persisted", "action", kindOf(action), "tasks", len(next.Tasks))
	return next, nil
}

// AddedTasks lists the tasks present in next but not in prev.
func AddedTasks(prev, next State) []model.Task {
	known := make(map[string]bool, len(prev.Tasks))
	for _, t := range prev.Tasks {
		known[t.ID] = true
	}
	var out []model.Task
	for _, t := range next.Tasks {
		if !known[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func sameTasks(a, b []model.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.ID != y.ID || x.Name != y.Name || x.Done != y.Done ||
			!x.CreatedAt.Equal(y.CreatedAt) || !x.Deadline.Equal(y.Deadline) {
			return false
		}
	}
	return true
}

func kindOf(action Action) string {
	if action == nil {
		return "<nil>"
	}
	return string(action.Kind())
}
