package views

import (
	"fmt"
	"strings"
	"time"
)

type TaskRowData struct {
	ID       string
	Name     string
	Done     bool
	Overdue  bool
	DueLabel string
}

type TaskListPanelData struct {
	Rows       []TaskRowData
	SelectedID string
	Search     string
	Total      int
	Done       int
}

type DraftPanelData struct {
	InputView string
	Focused   bool
	ErrorText string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Width    int
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tarefas: %d/%d done", data.Done, data.Total))
	if data.Search != "" {
		b.WriteString(fmt.Sprintf(" | search: %q (%d shown)", data.Search, len(data.Rows)))
	}
	b.WriteString("\n")
	if len(data.Rows) == 0 {
		if data.Search != "" {
			b.WriteString("(no matching tasks)")
		} else {
			b.WriteString("(no tasks yet)")
		}
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(cursor + " " + FormatTaskRow(row) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatTaskRow renders one task as "[x] #id name  (due label)".
func FormatTaskRow(row TaskRowData) string {
	check := "[ ]"
	if row.Done {
		check = "[x]"
	}
	line := fmt.Sprintf("%s #%s %s", check, row.ID, row.Name)
	if row.Done || row.DueLabel == "" {
		return line
	}
	if row.Overdue {
		return line + "  " + errorStyle.Render("("+row.DueLabel+")")
	}
	return line + "  (" + row.DueLabel + ")"
}

// RenderPlainList is the non-interactive listing used by the CLI.
func RenderPlainList(rows []TaskRowData) string {
	if len(rows) == 0 {
		return "(no tasks)"
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		check := "[ ]"
		if row.Done {
			check = "[x]"
		}
		line := fmt.Sprintf("%s #%s %s", check, row.ID, row.Name)
		if !row.Done && row.DueLabel != "" {
			line += "  (" + row.DueLabel + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func RenderDraftPanel(data DraftPanelData) string {
	var b strings.Builder
	b.WriteString("nova tarefa:\n")
	b.WriteString(data.InputView)
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+data.ErrorText))
	}
	if data.Focused {
		b.WriteString("\nkeys: [enter]add [esc]back to list")
	}
	return b.String()
}

func RenderSearchBar(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "search: " + inputView
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	md := "## keys\n\n" + strings.Join(data.Bindings, "\n")
	return fmt.Sprintf("help:\n%s\n%s", RenderMarkdown(md, data.Width), data.HelpView)
}

// FormatDue describes a deadline relative to now in whole days.
func FormatDue(deadline, now time.Time) string {
	if deadline.IsZero() {
		return ""
	}
	if now.After(deadline) {
		days := int(now.Sub(deadline).Hours() / 24)
		if days == 0 {
			return "overdue"
		}
		return fmt.Sprintf("overdue %dd", days)
	}
	days := int(deadline.Sub(now).Hours() / 24)
	if days == 0 {
		return "due today"
	}
	return fmt.Sprintf("due in %dd", days)
}
