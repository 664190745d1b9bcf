package tasks

import (
	"math"
	"strconv"

	"github.com/sandeepkv93/tarefa/internal/model"
)

// Reduce computes the next state for action. It has no side effects and
// never modifies s; unknown actions return s unchanged.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case Add:
		return addTask(s, a)
	case Remove:
		return removeTask(s, a)
	case Toggle:
		return toggleTask(s, a)
	case Write:
		return writeTask(s, a)
	case Search:
		return searchTask(s, a)
	default:
		return s
	}
}

func addTask(s State, a Add) State {
	if s.DraftName == "" {
		s.Error = ErrMsgEmptyName
		return s
	}
	if s.Error != "" {
		return s
	}

	next := s.NextID
	if next < 1 {
		next = nextIDFor(s.Tasks)
	}
	if next == math.MaxInt {
		s.Error = ErrMsgIDsExhausted
		return s
	}
	task := model.NewTask(strconv.Itoa(next), s.DraftName, a.At)

	updated := make([]model.Task, 0, len(s.Tasks)+1)
	updated = append(updated, s.Tasks...)
	s.Tasks = append(updated, task)
	s.NextID = next + 1
	s.Error = ""
	s.DraftName = ""
	return s
}

func removeTask(s State, a Remove) State {
	updated := make([]model.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != a.ID {
			updated = append(updated, t)
		}
	}
	s.Tasks = updated
	return s
}

func toggleTask(s State, a Toggle) State {
	updated := make([]model.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.ID == a.ID {
			t.Done = !t.Done
		}
		updated[i] = t
	}
	s.Tasks = updated
	return s
}

func writeTask(s State, a Write) State {
	s.DraftName = a.Name
	if s.HasName(a.Name) {
		s.Error = ErrMsgNameTaken
		return s
	}
	s.Error = ""
	return s
}

func searchTask(s State, a Search) State {
	s.Search = a.Text
	return s
}
