package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tarefa/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- `%s` %s", kb.Key, kb.Action))
	}
	_, width, _ := views.Layout(m.Width, true)
	return views.RenderHelpPanel(views.HelpPanelData{
		Width:    width,
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.Mode {
	case ModeDraft:
		return []KeyBinding{
			{Key: "enter", Action: "add task"},
			{Key: "esc", Action: "back to list"},
		}
	case ModeSearch:
		return []KeyBinding{
			{Key: "enter", Action: "keep filter"},
			{Key: "esc", Action: "clear filter"},
		}
	default:
		return []KeyBinding{
			{Key: m.Keys.NewTask, Action: "new task"},
			{Key: m.Keys.Search, Action: "search by name"},
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle done"},
			{Key: m.Keys.Remove, Action: "remove task"},
			{Key: "esc", Action: "clear search"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
