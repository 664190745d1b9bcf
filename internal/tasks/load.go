package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sandeepkv93/tarefa/internal/model"
	"github.com/sandeepkv93/tarefa/internal/storage"
)

var ErrCorruptState = errors.New("tasks: corrupt persisted state")

// Load rehydrates state from repo. A missing task list yields the default
// state. A payload that does not decode or holds invalid tasks also
// yields the default state, together with an error wrapping
// ErrCorruptState so the caller can report it and carry on.
//
// NextID resumes from the stored counter, or from the highest id still
// present when that is larger, so ids of removed tasks stay retired.
func Load(ctx context.Context, repo storage.Repository) (State, error) {
	records, err := repo.LoadTasks(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return DefaultState(), nil
		}
		if errors.Is(err, storage.ErrMalformed) {
			return DefaultState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		return DefaultState(), fmt.Errorf("load tasks: %w", err)
	}

	loaded, err := FromRecords(records)
	if err != nil {
		return DefaultState(), fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	stored, err := repo.LoadNextID(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrMalformed):
		stored = 0
	case err != nil:
		return DefaultState(), fmt.Errorf("load next id: %w", err)
	}

	s := DefaultState()
	s.Tasks = loaded
	s.NextID = max(stored, nextIDFor(loaded))
	return s, nil
}

func FromRecords(records []storage.Task) ([]model.Task, error) {
	out := make([]model.Task, 0, len(records))
	for i, r := range records {
		t := model.Task{
			ID:        r.ID,
			Name:      r.Name,
			Done:      r.Done,
			CreatedAt: r.CreatedAt,
			Deadline:  r.Deadline,
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func ToRecords(list []model.Task) []storage.Task {
	out := make([]storage.Task, 0, len(list))
	for _, t := range list {
		out = append(out, storage.Task{
			ID:        t.ID,
			Name:      t.Name,
			Done:      t.Done,
			CreatedAt: t.CreatedAt,
			Deadline:  t.Deadline,
		})
	}
	return out
}

// nextIDFor continues numbering after the highest numeric id and never
// below the list length, so lists written with length-derived ids keep
// working. An id of math.MaxInt has no successor and is left out; the
// result is at most math.MaxInt.
func nextIDFor(list []model.Task) int {
	highest := len(list)
	for _, t := range list {
		n, err := strconv.Atoi(t.ID)
		if err != nil || n == math.MaxInt {
			continue
		}
		highest = max(highest, n)
	}
	return highest + 1
}
