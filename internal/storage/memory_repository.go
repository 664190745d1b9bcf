package storage

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu     sync.Mutex
	tasks  []Task
	stored bool
	nextID int
	saves  int
}

func NewMemoryRepository(seed ...Task) *MemoryRepository {
	r := &MemoryRepository{}
	if len(seed) > 0 {
		r.tasks = append([]Task(nil), seed...)
		r.stored = true
	}
	return r
}

func (r *MemoryRepository) LoadTasks(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stored {
		return nil, ErrNotFound
	}
	return append([]Task{}, r.tasks...), nil
}

func (r *MemoryRepository) LoadNextID(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nextID < 1 {
		return 0, ErrNotFound
	}
	return r.nextID, nil
}

func (r *MemoryRepository) SaveTasks(ctx context.Context, tasks []Task, nextID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append([]Task{}, tasks...)
	r.stored = true
	if nextID > 0 {
		r.nextID = nextID
	}
	r.saves++
	return nil
}

// Saves counts successful SaveTasks calls.
func (r *MemoryRepository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *MemoryRepository) Close() error { return nil }
