package update

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tarefa/internal/model"
	"github.com/sandeepkv93/tarefa/internal/scheduler"
	"github.com/sandeepkv93/tarefa/internal/tasks"
)

type Mode string

const (
	ModeList   Mode = "list"
	ModeDraft  Mode = "draft"
	ModeSearch Mode = "search"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NewTask string
	Search  string
	Toggle  string
	Remove  string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Store          *tasks.Store
	Scheduler      *scheduler.Engine
	Mode           Mode
	Cursor         int
	SelectedTaskID string
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	// terminal width from the last tea.WindowSizeMsg, 0 until one arrives
	Width int

	notifier    DesktopNotifier
	logger      *slog.Logger
	droppedSeen uint64
	ctx         context.Context
	now         func() time.Time

	draftInput   textinput.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DispatchMsg feeds a reducer action into the model from outside the
// keyboard handlers.
type DispatchMsg struct {
	Action tasks.Action
}

type DeadlineDueMsg struct {
	Event scheduler.DeadlineEvent
}

func NewModel(store *tasks.Store) Model {
	if store == nil {
		store = tasks.NewStore(tasks.DefaultState(), nil)
	}
	m := Model{
		Store:    store,
		Mode:     ModeList,
		notifier: NoopDesktopNotifier{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:      context.Background(),
		now:      time.Now,
		Keys: GlobalKeyMap{
			NewTask: "n",
			Search:  "f",
			Toggle:  " ",
			Remove:  "d",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initInputs()
	m.syncFromState(store.State())
	return m
}

func NewModelWithConfig(store *tasks.Store, engine *scheduler.Engine, notifier DesktopNotifier, logger *slog.Logger, cfg RuntimeConfig) Model {
	m := NewModel(store)
	m.Scheduler = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if logger != nil {
		m.logger = logger
	}
	m.scheduleAll(m.Store.State().Tasks)
	return m
}

func (m *Model) initInputs() {
	m.draftInput = textinput.New()
	m.draftInput.Placeholder = "nome da tarefa"
	m.draftInput.Prompt = "+ "
	m.draftInput.CharLimit = 200

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "filtrar por nome"
	m.searchInput.Prompt = ""

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ""

	m.helpModel = help.New()
}

// dispatch runs action through the store and keeps the cursor, draft
// input and deadline timers in line with the resulting state.
// A persistence failure is reported through fail and returned so callers
// leave the error status in place.
func (m *Model) dispatch(action tasks.Action) (tasks.State, error) {
	prev := m.Store.State()
	next, err := m.Store.Dispatch(m.ctx, action)
	if err != nil {
		m.fail(err)
	}
	m.syncDeadlines(prev, next)
	m.syncFromState(next)
	return next, err
}

func (m *Model) syncFromState(s tasks.State) {
	visible := s.Visible()
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if len(visible) == 0 {
		m.SelectedTaskID = ""
	} else {
		m.SelectedTaskID = visible[m.Cursor].ID
	}
	if m.draftInput.Value() != s.DraftName {
		m.draftInput.SetValue(s.DraftName)
	}
	if m.searchInput.Value() != s.Search {
		m.searchInput.SetValue(s.Search)
	}
}

func (m *Model) selectedTask() (model.Task, bool) {
	if m.SelectedTaskID == "" {
		return model.Task{}, false
	}
	return m.Store.State().Task(m.SelectedTaskID)
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("tarefa operation failed", "err", err)
	m.notify("Error", err.Error(), "error")
}
