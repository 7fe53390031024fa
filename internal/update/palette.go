package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/agencyd/internal/commands"
	"github.com/sandeepkv93/agencyd/internal/views"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "tab":
		if hints := commands.Complete(m.commandInput.Value()); len(hints) == 1 {
			m.commandInput.SetValue(string(hints[0]) + " ")
			m.commandInput.CursorEnd()
			m.Palette.Input = m.commandInput.Value()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Status: func(a commands.StatusArgs) (commands.Result, error) {
			t, ok := m.store.Task(a.TaskID)
			if !ok || !m.store.UpdateTaskStatus(a.TaskID, a.Status) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task with id " + a.TaskID}
			}
			m.refresh()
			m.focusTask(a.TaskID)
			return commands.Result{Message: fmt.Sprintf("%s: %s -> %s", t.Title, t.Status, a.Status)}, nil
		},
		New: func(a commands.NewArgs) (commands.Result, error) {
			task := m.store.CreateTask(quickTaskInput(m.state, a.Title, m.clock.Now()))
			m.refresh()
			m.CurrentView = ViewTasks
			m.focusTask(task.ID)
			return commands.Result{Message: "created task " + task.ID}, nil
		},
		Clear: func() (commands.Result, error) {
			n := len(m.state.Notifications)
			m.store.ClearNotifications()
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("cleared %d notification(s)", n)}, nil
		},
		Dismiss: func() (commands.Result, error) {
			m.store.DismissToast()
			m.refresh()
			return commands.Result{Message: "toast dismissed"}, nil
		},
		Presence: func(a commands.PresenceArgs) (commands.Result, error) {
			if err := m.store.SetPresence(a.Status); err != nil {
				return commands.Result{}, err
			}
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("presence: %s", a.Status)}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			for _, v := range Views {
				if strings.EqualFold(string(v), a.View) {
					m.CurrentView = v
					return commands.Result{Message: "view: " + string(v)}, nil
				}
			}
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown view " + a.View}
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Calendar.Filter = a.Filter
			m.CurrentView = ViewCalendar
			return commands.Result{Message: "calendar filter: " + string(a.Filter)}, nil
		},
		Remind: func() (commands.Result, error) {
			engine := m.sessions.Engine()
			if engine == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "reminders run only while signed in"}
			}
			created := engine.Tick()
			m.refresh()
			return commands.Result{Message: fmt.Sprintf("reminder pass: %d notification(s)", len(created))}, nil
		},
		Logout: func() (commands.Result, error) {
			follow = m.logout()
			return commands.Result{Message: "signed out"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, follow
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}

func (m Model) renderCommandPalette() string {
	input := m.commandInput.Value()
	var hints []string
	if !strings.Contains(strings.TrimSpace(input), " ") {
		for _, t := range commands.Complete(input) {
			hints = append(hints, string(t))
		}
	}
	return views.RenderCommandPalette(m.commandInput.View(), hints)
}
