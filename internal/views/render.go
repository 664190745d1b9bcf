package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one frame of the UI. Width is the terminal width; zero means
// it is not known yet and DefaultWidth is used.
type AppData struct {
	Width         int
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Notification  string
	Footer        string
}

const (
	DefaultWidth  = 110
	minPanelWidth = 32
	// left and right border of panelStyle; Width already counts padding
	panelChrome = 2
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Layout splits width between the task pane and the side pane. The side
// pane gets two fifths when there is room for both; otherwise it stacks
// under the task pane at full width.
func Layout(width int, withSide bool) (left, right int, stacked bool) {
	if width <= 0 {
		width = DefaultWidth
	}
	full := max(width-panelChrome, minPanelWidth)
	if !withSide {
		return full, 0, false
	}
	side := width * 2 / 5
	tasks := width - side
	if side-panelChrome < minPanelWidth || tasks-panelChrome < minPanelWidth {
		return full, full, true
	}
	return tasks - panelChrome, side - panelChrome, false
}

func RenderApp(data AppData) string {
	hasSide := strings.TrimSpace(data.RightPane) != ""
	leftW, rightW, stacked := Layout(data.Width, hasSide)

	body := panelStyle.Width(leftW).Render(data.LeftPane)
	if hasSide {
		side := panelStyle.Width(rightW).Render(data.RightPane)
		if stacked {
			body = lipgloss.JoinVertical(lipgloss.Left, body, side)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
		}
	}

	out := []string{headerStyle.Render(data.Header), body}
	if data.StatusLine != "" {
		style := statusStyle
		if data.StatusIsError {
			style = errorStyle
		}
		out = append(out, style.Render(data.StatusLine))
	}
	if data.Notification != "" {
		out = append(out, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		out = append(out, mutedStyle.Render(data.Footer))
	}
	return strings.Join(out, "\n")
}

// RenderMarkdown renders md for a pane of the given width, falling back to
// the raw text if glamour cannot.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
