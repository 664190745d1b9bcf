package tasks

import (
	"slices"

	"github.com/sandeepkv93/tarefa/internal/model"
)

// User-facing validation messages carried in State.Error.
const (
	ErrMsgEmptyName = "Nome da tarefa não pode ser vazio"
	ErrMsgNameTaken = "Nome da tarefa já existe"
	// Set by Add once every id up to math.MaxInt has been handed out.
	ErrMsgIDsExhausted = "Limite de identificadores de tarefa atingido"
)

type State struct {
	Tasks     []model.Task
	Error     string
	DraftName string
	Search    string
	// NextID is the counter behind task ids. It only grows, so ids stay
	// unique after removals.
	NextID int
}

func DefaultState() State {
	return State{
		Tasks:  []model.Task{},
		NextID: 1,
	}
}

// Visible returns the tasks matching the current search, in list order.
func (s State) Visible() []model.Task {
	return model.FilterByName(s.Tasks, s.Search)
}

func (s State) Task(id string) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s State) HasName(name string) bool {
	return slices.ContainsFunc(s.Tasks, func(t model.Task) bool { return t.Name == name })
}

func (s State) DoneCount() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Done {
			n++
		}
	}
	return n
}
