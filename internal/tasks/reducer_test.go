package tasks

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/sandeepkv93/tarefa/internal/model"
)

var testNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

type renameAction struct{}

func (renameAction) Kind() ActionKind { return "rename" }

func stateWith(names ...string) State {
	s := DefaultState()
	for _, name := range names {
		s = Reduce(s, Write{Name: name})
		s = Reduce(s, Add{At: testNow})
	}
	return s
}

func TestReduceUnknownActionIsIdentity(t *testing.T) {
	s := stateWith("A", "B")
	s.Search = "a"
	s.DraftName = "draft"
	if got := Reduce(s, renameAction{}); !reflect.DeepEqual(got, s) {
		t.Fatalf("unknown action changed state: got %#v want %#v", got, s)
	}
	if got := Reduce(s, nil); !reflect.DeepEqual(got, s) {
		t.Fatalf("nil action changed state: got %#v want %#v", got, s)
	}
}

func TestAddWithEmptyDraftSetsError(t *testing.T) {
	s := stateWith("A")
	got := Reduce(s, Add{At: testNow})
	if got.Error != ErrMsgEmptyName {
		t.Fatalf("expected empty-name error, got %q", got.Error)
	}
	if len(got.Tasks) != 1 {
		t.Fatalf("expected task list unchanged, got %d tasks", len(got.Tasks))
	}
}

func TestAddBuildsTaskFromDraft(t *testing.T) {
	s := Reduce(DefaultState(), Write{Name: "Buy milk"})
	got := Reduce(s, Add{At: testNow})

	if len(got.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got.Tasks))
	}
	task := got.Tasks[0]
	want := model.Task{
		ID:        "1",
		Name:      "Buy milk",
		Done:      false,
		CreatedAt: testNow,
		Deadline:  testNow.Add(7 * 24 * time.Hour),
	}
	if !reflect.DeepEqual(task, want) {
		t.Fatalf("unexpected task: %#v", task)
	}
	if got.DraftName != "" || got.Error != "" {
		t.Fatalf("expected draft and error cleared, got draft=%q error=%q", got.DraftName, got.Error)
	}
	if len(s.Tasks) != 0 {
		t.Fatal("previous state was modified")
	}
}

func TestAddRefusesWhileErrorIsSet(t *testing.T) {
	s := stateWith("A")
	s = Reduce(s, Write{Name: "A"})
	if got := Reduce(s, Add{At: testNow}); !reflect.DeepEqual(got, s) {
		t.Fatalf("expected state unchanged, got %#v", got)
	}
}

func TestIDsStayUniqueAfterRemoval(t *testing.T) {
	s := stateWith("A", "B")
	s = Reduce(s, Remove{ID: "1"})
	s = Reduce(s, Write{Name: "C"})
	s = Reduce(s, Add{At: testNow})

	seen := map[string]bool{}
	for _, task := range s.Tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate id %q in %#v", task.ID, s.Tasks)
		}
		seen[task.ID] = true
	}
	if last := s.Tasks[len(s.Tasks)-1]; last.ID != "3" {
		t.Fatalf("expected new id 3, got %q", last.ID)
	}
}

func TestAddWithoutCounterContinuesAfterExistingIDs(t *testing.T) {
	s := stateWith("A", "B")
	s.NextID = 0
	s = Reduce(Reduce(s, Write{Name: "C"}), Add{At: testNow})
	if got := s.Tasks[2].ID; got != "3" {
		t.Fatalf("expected id 3, got %q", got)
	}
	if s.NextID != 4 {
		t.Fatalf("expected next id 4, got %d", s.NextID)
	}
}

func TestAddRefusesWhenIDsAreExhausted(t *testing.T) {
	s := stateWith("A")
	s.NextID = math.MaxInt
	next := Reduce(Reduce(s, Write{Name: "B"}), Add{At: testNow})
	if len(next.Tasks) != 1 {
		t.Fatalf("expected no task added, got %#v", next.Tasks)
	}
	if next.Error != ErrMsgIDsExhausted || next.NextID != math.MaxInt {
		t.Fatalf("unexpected state: error=%q next=%d", next.Error, next.NextID)
	}
}

func TestWriteDuplicateNameSetsError(t *testing.T) {
	s := stateWith("Buy milk")
	got := Reduce(s, Write{Name: "Buy milk"})
	if got.Error != ErrMsgNameTaken {
		t.Fatalf("expected name-taken error, got %q", got.Error)
	}
	if got.DraftName != "Buy milk" {
		t.Fatalf("expected draft updated, got %q", got.DraftName)
	}
	if !reflect.DeepEqual(got.Tasks, s.Tasks) {
		t.Fatal("write must not touch the task list")
	}

	cleared := Reduce(got, Write{Name: "Buy bread"})
	if cleared.Error != "" {
		t.Fatalf("expected error cleared for a novel name, got %q", cleared.Error)
	}
}

func TestWriteIsCaseSensitive(t *testing.T) {
	s := stateWith("Buy milk")
	if got := Reduce(s, Write{Name: "buy milk"}); got.Error != "" {
		t.Fatalf("expected exact-name check only, got %q", got.Error)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s := stateWith("A", "B")
	once := Reduce(s, Toggle{ID: "2"})
	if !once.Tasks[1].Done || once.Tasks[0].Done {
		t.Fatalf("unexpected toggle result: %#v", once.Tasks)
	}
	if s.Tasks[1].Done {
		t.Fatal("previous state was modified")
	}
	twice := Reduce(once, Toggle{ID: "2"})
	if !reflect.DeepEqual(twice, s) {
		t.Fatalf("double toggle should restore state: %#v", twice)
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	s := stateWith("A")
	got := Reduce(s, Toggle{ID: "nonexistent"})
	if !reflect.DeepEqual(got.Tasks, s.Tasks) {
		t.Fatalf("expected tasks unchanged, got %#v", got.Tasks)
	}
}

func TestRemoveDropsAllMatches(t *testing.T) {
	s := stateWith("A", "B")
	s.Tasks = append(s.Tasks, model.NewTask("1", "dup", testNow))

	got := Reduce(s, Remove{ID: "1"})
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "2" {
		t.Fatalf("unexpected remove result: %#v", got.Tasks)
	}
	if len(s.Tasks) != 3 {
		t.Fatal("previous state was modified")
	}
	if noop := Reduce(got, Remove{ID: "missing"}); !reflect.DeepEqual(noop.Tasks, got.Tasks) {
		t.Fatalf("expected no-op remove, got %#v", noop.Tasks)
	}
}

func TestSearchSetsFilter(t *testing.T) {
	s := stateWith("Buy milk", "Walk dog", "Milk cow")
	got := Reduce(s, Search{Text: "MILK"})
	if got.Search != "MILK" {
		t.Fatalf("expected search text set, got %q", got.Search)
	}
	visible := got.Visible()
	if len(visible) != 2 || visible[0].Name != "Buy milk" || visible[1].Name != "Milk cow" {
		t.Fatalf("unexpected visible tasks: %#v", visible)
	}
	if all := Reduce(got, Search{Text: ""}).Visible(); len(all) != 3 {
		t.Fatalf("empty search should show all tasks, got %d", len(all))
	}
}

func TestScenarioWriteAddDuplicateRemove(t *testing.T) {
	s := DefaultState()

	s = Reduce(s, Write{Name: "Buy milk"})
	if s.DraftName != "Buy milk" || s.Error != "" {
		t.Fatalf("after write: %#v", s)
	}

	s = Reduce(s, Add{At: testNow})
	if len(s.Tasks) != 1 || s.Tasks[0].ID != "1" || s.Tasks[0].Name != "Buy milk" || s.Tasks[0].Done {
		t.Fatalf("after add: %#v", s.Tasks)
	}
	if s.DraftName != "" || s.Error != "" {
		t.Fatalf("after add draft/error: %q/%q", s.DraftName, s.Error)
	}

	s = Reduce(s, Write{Name: "Buy milk"})
	if s.Error != "Nome da tarefa já existe" || s.DraftName != "Buy milk" {
		t.Fatalf("after duplicate write: %#v", s)
	}

	before := s
	s = Reduce(s, Add{At: testNow})
	if !reflect.DeepEqual(s, before) {
		t.Fatalf("add should refuse while error set: %#v", s)
	}

	s = Reduce(s, Remove{ID: "1"})
	if len(s.Tasks) != 0 {
		t.Fatalf("after remove: %#v", s.Tasks)
	}
}

func TestScenarioToggle(t *testing.T) {
	s := DefaultState()
	s.Tasks = []model.Task{{ID: "1", Name: "A", Done: false}}

	s = Reduce(s, Toggle{ID: "1"})
	if !s.Tasks[0].Done {
		t.Fatalf("expected task 1 done: %#v", s.Tasks)
	}
	before := s.Tasks
	s = Reduce(s, Toggle{ID: "nonexistent"})
	if !reflect.DeepEqual(s.Tasks, before) {
		t.Fatalf("expected tasks unchanged: %#v", s.Tasks)
	}
}

func TestAddedTasks(t *testing.T) {
	prev := stateWith("A")
	next := Reduce(Reduce(prev, Write{Name: "B"}), Add{At: testNow})
	added := AddedTasks(prev, next)
	if len(added) != 1 || added[0].Name != "B" {
		t.Fatalf("unexpected added tasks: %#v", added)
	}
	if AddedTasks(next, Reduce(next, Toggle{ID: "1"})) != nil {
		t.Fatal("toggle should not report added tasks")
	}
}
