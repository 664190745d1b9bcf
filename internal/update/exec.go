package update

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/tarefa/internal/commands"
	"github.com/sandeepkv93/tarefa/internal/model"
	"github.com/sandeepkv93/tarefa/internal/tasks"
	"github.com/sandeepkv93/tarefa/internal/views"
)

// RunCommand executes a parsed command against store. Adding by command
// goes through Write and Add like the keyboard does, then puts back the
// draft the user was typing.
func RunCommand(ctx context.Context, store *tasks.Store, cmd commands.Command, now time.Time) (commands.Result, error) {
	return commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			prev := store.State()
			defer func() { _, _ = store.Dispatch(ctx, tasks.Write{Name: prev.DraftName}) }()

			s, err := store.Dispatch(ctx, tasks.Write{Name: a.Name})
			if err != nil {
				return commands.Result{}, err
			}
			if s.Error != "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeRejected, Message: s.Error}
			}
			next, err := store.Dispatch(ctx, tasks.Add{})
			if err != nil {
				return commands.Result{}, err
			}
			added := tasks.AddedTasks(prev, next)
			if len(added) == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeRejected, Message: next.Error}
			}
			t := added[len(added)-1]
			return commands.Result{Message: fmt.Sprintf("adicionada: #%s %s", t.ID, t.Name)}, nil
		},
		Remove: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := findTask(store.State(), a.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := store.Dispatch(ctx, tasks.Remove{ID: a.ID}); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("removida: #%s %s", t.ID, t.Name)}, nil
		},
		Toggle: func(a commands.TargetArgs) (commands.Result, error) {
			t, err := findTask(store.State(), a.ID)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := store.Dispatch(ctx, tasks.Toggle{ID: a.ID}); err != nil {
				return commands.Result{}, err
			}
			if t.Done {
				return commands.Result{Message: fmt.Sprintf("reaberta: #%s %s", t.ID, t.Name)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("concluída: #%s %s", t.ID, t.Name)}, nil
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			s, err := store.Dispatch(ctx, tasks.Search{Text: a.Text})
			if err != nil {
				return commands.Result{}, err
			}
			if a.Text == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search %q: %d match(es)", a.Text, len(s.Visible()))}, nil
		},
		List: func(a commands.SearchArgs) (commands.Result, error) {
			return commands.Result{Message: views.RenderPlainList(taskRows(model.FilterByName(store.State().Tasks, a.Text), now))}, nil
		},
	})
}

func findTask(s tasks.State, id string) (model.Task, error) {
	t, ok := s.Task(id)
	if !ok {
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("task #%s not found", id)}
	}
	return t, nil
}

func taskRows(list []model.Task, now time.Time) []views.TaskRowData {
	rows := make([]views.TaskRowData, 0, len(list))
	for _, t := range list {
		rows = append(rows, views.TaskRowData{
			ID:       t.ID,
			Name:     t.Name,
			Done:     t.Done,
			Overdue:  t.Overdue(now),
			DueLabel: views.FormatDue(t.Deadline, now),
		})
	}
	return rows
}
