package model

import (
	"errors"
	"testing"
	"time"
)

func TestNewTaskDeadlineIsOneWeekOut(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := NewTask("1", "Buy milk", now)
	if task.Done {
		t.Fatal("expected new task to be pending")
	}
	want := time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC)
	if !task.Deadline.Equal(want) {
		t.Fatalf("deadline = %s, want %s", task.Deadline, want)
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiredFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	base := NewTask("1", "Buy milk", now)

	noID := base
	noID.ID = " "
	if err := noID.Validate(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for missing id, got: %v", err)
	}

	noName := base
	noName.Name = ""
	if err := noName.Validate(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for missing name, got: %v", err)
	}

	noCreated := base
	noCreated.CreatedAt = time.Time{}
	if err := noCreated.Validate(); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("expected ErrInvalidTask for missing created_at, got: %v", err)
	}

	backwards := base
	backwards.Deadline = now.Add(-time.Hour)
	if err := backwards.Validate(); !errors.Is(err, ErrInvalidDeadline) {
		t.Fatalf("expected ErrInvalidDeadline, got: %v", err)
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := NewTask("1", "Buy milk", now)
	if task.Overdue(now.Add(DeadlineWindow)) {
		t.Fatal("task should not be overdue exactly at the deadline")
	}
	if !task.Overdue(now.Add(DeadlineWindow + time.Second)) {
		t.Fatal("expected task overdue after the deadline")
	}
	task.Done = true
	if task.Overdue(now.Add(30 * 24 * time.Hour)) {
		t.Fatal("done tasks are never overdue")
	}
}

func TestSearchByName(t *testing.T) {
	task := Task{ID: "1", Name: "Comprar Leite"}
	cases := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"leite", true},
		{"LEITE", true},
		{"prar l", true},
		{"pão", false},
		{"Comprar Leite!", false},
	}
	for _, tc := range cases {
		if got := SearchByName(tc.search)(task); got != tc.want {
			t.Fatalf("SearchByName(%q) = %v, want %v", tc.search, got, tc.want)
		}
	}
}

func TestFilterByNameKeepsOrder(t *testing.T) {
	tasks := []Task{
		{ID: "1", Name: "Buy milk"},
		{ID: "2", Name: "Walk dog"},
		{ID: "3", Name: "Milk the cow"},
	}
	got := FilterByName(tasks, "MILK")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected filter result: %#v", got)
	}
	if all := FilterByName(tasks, ""); len(all) != len(tasks) {
		t.Fatalf("empty search should keep all tasks, got %d", len(all))
	}
}
