package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tarefa/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	prev := m.Store.State()
	res, err := RunCommand(m.ctx, m.Store, cmd, m.now())
	next := m.Store.State()
	m.syncDeadlines(prev, next)
	m.syncFromState(next)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("command failed", "command", raw, "err", err)
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	if cmd.Type == commands.TypeList {
		m.Status = StatusBar{Text: "task list printed below"}
		m.notify("Tarefas", res.Message, "info")
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}
