package storage

import "time"

// TasksKey is the single key holding the serialized task list.
const TasksKey = "tasks"

// NextIDKey holds the next task id to hand out, so ids of removed tasks
// are not reused after a restart.
const NextIDKey = "next_id"

// Task is the persisted shape of a task record.
type Task struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Name      string    `json:"name" yaml:"name" toml:"name"`
	Done      bool      `json:"done" yaml:"done" toml:"done"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt"`
	Deadline  time.Time `json:"deadline" yaml:"deadline" toml:"deadline"`
}

type Item struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
