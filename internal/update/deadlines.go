package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tarefa/internal/model"
	"github.com/sandeepkv93/tarefa/internal/scheduler"
	"github.com/sandeepkv93/tarefa/internal/tasks"
)

func waitForDeadlineCmd(ch <-chan scheduler.DeadlineEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DeadlineDueMsg{Event: ev}
	}
}

func (m *Model) scheduleAll(list []model.Task) {
	for _, t := range list {
		if !t.Done {
			m.scheduleDeadline(t)
		}
	}
}

func (m *Model) scheduleDeadline(t model.Task) {
	if m.Scheduler == nil {
		return
	}
	err := m.Scheduler.Schedule(scheduler.DeadlineEvent{
		TaskID:    t.ID,
		Name:      t.Name,
		TriggerAt: t.Deadline,
	})
	if err != nil {
		m.logger.Warn("schedule deadline failed", "task", t.ID, "err", err)
	}
}

func (m *Model) cancelDeadline(id string) {
	if m.Scheduler == nil {
		return
	}
	m.Scheduler.Cancel(id)
}

// syncDeadlines keeps exactly one pending timer per open task: new or
// reopened tasks are scheduled, removed or completed ones cancelled.
func (m *Model) syncDeadlines(prev, next tasks.State) {
	if m.Scheduler == nil {
		return
	}
	for _, t := range next.Tasks {
		before, existed := prev.Task(t.ID)
		switch {
		case !existed && !t.Done:
			m.scheduleDeadline(t)
		case existed && before.Done && !t.Done:
			m.scheduleDeadline(t)
		case existed && !before.Done && t.Done:
			m.cancelDeadline(t.ID)
		}
	}
	for _, t := range prev.Tasks {
		if _, still := next.Task(t.ID); !still {
			m.cancelDeadline(t.ID)
		}
	}
}

func (m *Model) applyDeadline(ev scheduler.DeadlineEvent) {
	task, ok := m.Store.State().Task(ev.TaskID)
	if !ok || task.Done {
		m.logger.Debug("stale deadline ignored", "task", ev.TaskID)
		return
	}
	text := fmt.Sprintf("prazo vencido: #%s %s", task.ID, task.Name)
	m.Status = StatusBar{Text: text, IsError: true}
	m.logger.Info("task deadline passed", "task", task.ID, "deadline", task.Deadline)
	m.notify("Tarefa atrasada", text, "warn")
}

// reportDroppedDeadlines surfaces alerts the engine discarded because its
// buffer was full since the last report.
func (m *Model) reportDroppedDeadlines() {
	if m.Scheduler == nil {
		return
	}
	total := m.Scheduler.Dropped()
	if total <= m.droppedSeen {
		return
	}
	missed := total - m.droppedSeen
	m.droppedSeen = total
	m.logger.Warn("deadline alerts dropped", "missed", missed, "total", total)
	m.notify("Alertas perdidos", fmt.Sprintf("%d alerta(s) de prazo descartado(s)", missed), "warn")
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification failed", "err", err)
		}
	}
}
