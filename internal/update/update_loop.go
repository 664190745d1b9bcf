package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tarefa/internal/tasks"
	"github.com/sandeepkv93/tarefa/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDeadlineCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		switch m.Mode {
		case ModeDraft:
			return m.handleDraftKey(typed), nil
		case ModeSearch:
			return m.handleSearchKey(typed), nil
		default:
			return m.handleListKey(typed)
		}
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		return m, nil
	case DispatchMsg:
		m.dispatch(typed.Action)
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	case DeadlineDueMsg:
		m.applyDeadline(typed.Event)
		m.reportDroppedDeadlines()
		if m.Scheduler != nil {
			return m, waitForDeadlineCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.NewTask, "a", "i":
		m.Mode = ModeDraft
		m.draftInput.Focus()
		return m, nil
	case m.Keys.Search:
		m.Mode = ModeSearch
		m.searchInput.Focus()
		return m, nil
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncFromState(m.Store.State())
	case "down", "j":
		m.Cursor++
		m.syncFromState(m.Store.State())
	case m.Keys.Toggle, "x", "enter":
		if task, ok := m.selectedTask(); ok {
			next, err := m.dispatch(tasks.Toggle{ID: task.ID})
			if err != nil {
				return m, nil
			}
			if updated, found := next.Task(task.ID); found && updated.Done {
				m.Status = StatusBar{Text: fmt.Sprintf("concluída: #%s %s", task.ID, task.Name)}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("reaberta: #%s %s", task.ID, task.Name)}
			}
		}
	case m.Keys.Remove, "delete":
		if task, ok := m.selectedTask(); ok {
			if _, err := m.dispatch(tasks.Remove{ID: task.ID}); err != nil {
				return m, nil
			}
			m.Status = StatusBar{Text: fmt.Sprintf("removida: #%s %s", task.ID, task.Name)}
		}
	case "esc":
		if m.Store.State().Search != "" {
			m.dispatch(tasks.Search{Text: ""})
			m.Status = StatusBar{Text: "search cleared"}
		}
	}
	return m, nil
}

// handleDraftKey sends every edit of the draft through Write so duplicate
// names are flagged while typing.
func (m Model) handleDraftKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.draftInput.Blur()
		return m
	case "enter":
		prev := m.Store.State()
		next, err := m.dispatch(tasks.Add{})
		added := tasks.AddedTasks(prev, next)
		if len(added) > 0 {
			m.focusTask(added[len(added)-1].ID)
		}
		if err != nil {
			return m
		}
		if len(added) > 0 {
			t := added[len(added)-1]
			m.Status = StatusBar{Text: fmt.Sprintf("adicionada: #%s %s", t.ID, t.Name)}
		} else if next.Error != "" {
			m.Status = StatusBar{Text: next.Error, IsError: true}
		}
		return m
	}
	before := m.draftInput.Value()
	m.draftInput, _ = m.draftInput.Update(msg)
	if value := m.draftInput.Value(); value != before {
		m.dispatch(tasks.Write{Name: value})
	}
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.searchInput.Blur()
		m.dispatch(tasks.Search{Text: ""})
		return m
	case "enter":
		m.Mode = ModeList
		m.searchInput.Blur()
		return m
	}
	before := m.searchInput.Value()
	m.searchInput, _ = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		m.Cursor = 0
		m.dispatch(tasks.Search{Text: value})
	}
	return m
}

func (m *Model) focusTask(id string) {
	for i, t := range m.Store.State().Visible() {
		if t.ID == id {
			m.Cursor = i
			break
		}
	}
	m.syncFromState(m.Store.State())
}

func (m Model) View() string {
	s := m.Store.State()
	now := m.now()

	rows := taskRows(s.Visible(), now)

	left := []string{
		views.RenderTaskListPanel(views.TaskListPanelData{
			Rows:       rows,
			SelectedID: m.SelectedTaskID,
			Search:     s.Search,
			Total:      len(s.Tasks),
			Done:       s.DoneCount(),
		}),
		"",
		views.RenderDraftPanel(views.DraftPanelData{
			InputView: m.draftInput.View(),
			Focused:   m.Mode == ModeDraft,
			ErrorText: s.Error,
		}),
	}
	if bar := views.RenderSearchBar(m.Mode == ModeSearch, m.searchInput.View()); bar != "" {
		left = append(left, "", bar)
	}

	right := make([]string, 0, 2)
	if palette := views.RenderCommandPalette(m.Palette.Active, m.Palette.Input); palette != "" {
		right = append(right, palette)
	}
	if m.HelpVisible {
		right = append(right, m.renderHelpView())
	}

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	selected := "-"
	if m.SelectedTaskID != "" {
		selected = "#" + m.SelectedTaskID
	}
	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("tarefa | mode: %s | selected: %s", m.Mode, selected),
		LeftPane:      strings.Join(left, "\n"),
		RightPane:     strings.Join(right, "\n\n"),
		Width:         m.Width,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s new | %s search | space toggle | %s remove | / cmd | %s help | %s quit",
			m.Keys.NewTask, m.Keys.Search, m.Keys.Remove, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}
