package update

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/views"
)

const listDueLayout = "Jan 02 15:04"

func (m Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "v":
		m.Tasks.Board = !m.Tasks.Board
		m.syncTasks()
		return m, nil
	case "n":
		m.taskForm = newTaskForm(m.state, m.clock.Now())
		return m, m.taskForm.Init()
	case "[":
		m.moveSelectedTask(model.TaskStatus.Prev)
		return m, nil
	case "]":
		m.moveSelectedTask(model.TaskStatus.Next)
		return m, nil
	}

	if !m.Tasks.Board {
		var cmd tea.Cmd
		m.taskTable, cmd = m.taskTable.Update(msg)
		m.syncTaskDetail()
		return m, cmd
	}

	cols := insights.Columns(m.state.Tasks)
	switch msg.String() {
	case "h", "left":
		if m.Tasks.Column > 0 {
			m.Tasks.Column--
		}
	case "l", "right":
		if m.Tasks.Column < len(cols)-1 {
			m.Tasks.Column++
		}
	case "k", "up":
		if m.Tasks.Row > 0 {
			m.Tasks.Row--
		}
	case "j", "down":
		m.Tasks.Row++
	}
	m.syncTasks()
	return m, nil
}

// moveSelectedTask steps the selected task's status and keeps the cursor on
// it in its new column.
func (m *Model) moveSelectedTask(step func(model.TaskStatus) model.TaskStatus) {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	next := step(t.Status)
	if !m.store.UpdateTaskStatus(t.ID, next) {
		m.Status = StatusBar{Text: "task not found: " + t.ID, IsError: true}
		return
	}
	m.refresh()
	m.focusTask(t.ID)
	m.Status = StatusBar{Text: t.Title + " moved to " + string(next)}
}

// focusTask points the board and list cursors at id.
func (m *Model) focusTask(id string) {
	for ci, col := range insights.Columns(m.state.Tasks) {
		for ri, t := range col.Tasks {
			if t.ID == id {
				m.Tasks.Column = ci
				m.Tasks.Row = ri
			}
		}
	}
	for i, t := range m.state.Tasks {
		if t.ID == id {
			m.taskTable.SetCursor(i)
		}
	}
	m.syncTasks()
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Tasks.Board {
		cols := insights.Columns(m.state.Tasks)
		if m.Tasks.Column < 0 || m.Tasks.Column >= len(cols) {
			return model.Task{}, false
		}
		col := cols[m.Tasks.Column]
		if m.Tasks.Row < 0 || m.Tasks.Row >= len(col.Tasks) {
			return model.Task{}, false
		}
		return col.Tasks[m.Tasks.Row], true
	}
	i := m.taskTable.Cursor()
	if i < 0 || i >= len(m.state.Tasks) {
		return model.Task{}, false
	}
	return m.state.Tasks[i], true
}

func (m *Model) syncTasks() {
	cols := insights.Columns(m.state.Tasks)
	m.Tasks.Column = clamp(m.Tasks.Column, len(cols))
	if len(cols) > 0 {
		m.Tasks.Row = clamp(m.Tasks.Row, len(cols[m.Tasks.Column].Tasks))
	}

	rows := make([]table.Row, len(m.state.Tasks))
	for i, t := range m.state.Tasks {
		due := "-"
		if !t.DueDate.IsZero() {
			due = t.DueDate.Format(listDueLayout)
		}
		rows[i] = table.Row{
			truncate(t.ID, 8),
			truncate(t.Title, 30),
			truncate(insights.ClientName(m.state.Clients, t.ClientID), 14),
			string(t.Priority),
			string(t.Status),
			due,
		}
	}
	m.taskTable.SetRows(rows)
	if c := m.taskTable.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.taskTable.SetCursor(len(rows) - 1)
	}
	m.syncTaskDetail()
}

// syncTaskDetail renders the selected task's description, skipping glamour
// when neither the task nor its text changed.
func (m *Model) syncTaskDetail() {
	t, ok := m.selectedTask()
	if !ok {
		m.taskDesc, m.taskDescKey = "", ""
		return
	}
	k := t.ID + "\x00" + t.Description
	if k == m.taskDescKey {
		return
	}
	m.taskDescKey = k
	m.taskDesc = views.RenderMarkdown(t.Description)
}

func (m Model) renderTaskDetail() string {
	t, ok := m.selectedTask()
	if !ok {
		return "(no task selected)"
	}
	assignees := make([]string, 0, len(t.AssigneeIDs))
	for _, id := range t.AssigneeIDs {
		for _, ws := range m.state.Workspaces {
			if ws.ID == id {
				assignees = append(assignees, insights.ShortName(ws.Name))
			}
		}
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		Task:        t,
		ClientName:  insights.ClientName(m.state.Clients, t.ClientID),
		ProjectName: insights.ProjectName(m.state.Projects, t.ProjectID),
		Assignees:   assignees,
		Description: m.taskDesc,
	})
}

// clamp keeps i in [0,n), or 0 when n is 0.
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
