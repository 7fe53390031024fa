package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/scheduler"
	"github.com/sandeepkv93/agencyd/internal/store"
	"github.com/sandeepkv93/agencyd/internal/views"
)

const productName = "Getting It Done"

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChangeCmd(m.changes)}
	if m.engine != nil {
		cmds = append(cmds, waitForReminderCmd(m.engine.C()))
	}
	if m.login != nil {
		cmds = append(cmds, m.login.Init())
	}
	return tea.Batch(cmds...)
}

// waitForChangeCmd blocks on the store subscription. A closed channel ends
// the wait loop.
func waitForChangeCmd(ch <-chan store.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Kind: c.Kind}
	}
}

// waitForReminderCmd blocks on the engine's event channel, which closes when
// the session ends.
func waitForReminderCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderFiredMsg{Event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		if typed.Height > 12 {
			m.detailViewport.Height = typed.Height - 12
		}
		return m.forwardToForm(msg)
	case tea.KeyMsg:
		return m.handleKey(typed)
	case StoreChangedMsg:
		var cmds []tea.Cmd
		m.refresh()
		if !m.state.Session.LoggedIn && m.login == nil {
			m.openLogin()
			cmds = append(cmds, m.login.Init())
		}
		cmds = append(cmds, waitForChangeCmd(m.changes))
		return m, tea.Batch(cmds...)
	case ReminderFiredMsg:
		m.refresh()
		if n := len(typed.Event.Notifications); n > 0 {
			last := typed.Event.Notifications[n-1]
			m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", last.Title, last.Message), IsError: last.Urgent}
		}
		if m.engine != nil {
			return m, waitForReminderCmd(m.engine.C())
		}
		return m, nil
	case LoginSubmittedMsg:
		if typed.User == "" {
			return m, nil
		}
		m.engine = m.sessions.Login(typed.User)
		m.login = nil
		m.refresh()
		m.Status = StatusBar{Text: "signed in as " + typed.User}
		return m, waitForReminderCmd(m.engine.C())
	case TaskFormSubmittedMsg:
		m.taskForm = nil
		task := m.store.CreateTask(typed.Input)
		m.refresh()
		m.focusTask(task.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("created task %s", task.Title)}
		return m, nil
	case FormCancelledMsg:
		m.taskForm = nil
		m.Status = StatusBar{Text: "new task cancelled"}
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m.forwardToForm(msg)
}

// forwardToForm hands messages the model does not own, such as huh's
// internal field navigation, to whichever form is open.
func (m Model) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.login != nil:
		return m, m.login.Update(msg)
	case m.taskForm != nil:
		return m, m.taskForm.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login != nil {
		if msg.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		return m, m.login.Update(msg)
	}
	if m.taskForm != nil {
		if msg.String() == "esc" {
			return m, func() tea.Msg { return FormCancelledMsg{} }
		}
		return m, m.taskForm.Update(msg)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Palette):
		m.openPalette()
		return m, nil
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Notifications):
		m.NotificationsOpen = !m.NotificationsOpen
		return m, nil
	case key.Matches(msg, m.Keys.ClearAlerts):
		m.store.ClearNotifications()
		m.refresh()
		m.Status = StatusBar{Text: "notifications cleared"}
		return m, nil
	case key.Matches(msg, m.Keys.DismissToast):
		m.store.DismissToast()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.Keys.Presence):
		next := m.state.Session.Presence.Next()
		if err := m.store.SetPresence(next); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("presence: %s", next)}
		return m, nil
	case key.Matches(msg, m.Keys.Logout):
		cmd := m.logout()
		return m, cmd
	}
	for i, b := range []key.Binding{m.Keys.Dashboard, m.Keys.Clients, m.Keys.Tasks, m.Keys.Calendar, m.Keys.Workspaces} {
		if key.Matches(msg, b) {
			m.CurrentView = Views[i]
			return m, nil
		}
	}

	switch m.CurrentView {
	case ViewClients:
		return m.handleClientsKey(msg)
	case ViewTasks:
		return m.handleTasksKey(msg)
	case ViewCalendar:
		return m.handleCalendarKey(msg), nil
	}
	return m, nil
}

func (m *Model) openLogin() {
	m.login = newLoginForm()
	m.taskForm = nil
	m.Palette = CommandPaletteState{}
	m.commandInput.Blur()
	m.NotificationsOpen = false
}

// logout stops the scheduler, ends the session and brings back the login
// form.
func (m *Model) logout() tea.Cmd {
	m.sessions.Logout()
	m.engine = nil
	m.refresh()
	m.openLogin()
	m.Status = StatusBar{Text: "signed out"}
	return m.login.Init()
}

// refresh re-reads the store and keeps every cursor inside the new data.
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	m.syncTasks()
	m.syncClients()
}

func (m Model) dataset() model.Dataset {
	return model.Dataset{
		Workspaces: m.state.Workspaces,
		Clients:    m.state.Clients,
		Projects:   m.state.Projects,
		Meetings:   m.state.Meetings,
		Tasks:      m.state.Tasks,
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.login != nil {
		return views.RenderLogin(m.login.View())
	}

	tabs := make([]string, len(Views))
	for i, v := range Views {
		tabs[i] = string(v)
	}
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}
	return views.RenderApp(views.AppData{
		Header: views.RenderHeader(views.HeaderData{
			Product:  productName,
			User:     m.state.Session.User,
			Presence: m.state.Session.Presence,
			Unread:   m.state.UnreadCount(),
			View:     string(m.CurrentView),
		}),
		Tabs:          views.RenderTabs(tabs, string(m.CurrentView)),
		Body:          m.renderBody(),
		Side:          m.renderSidePane(),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Toast:         views.RenderToast(m.state.Toast),
		Footer:        m.helpModel.ShortHelpView(m.globalKeys()),
	})
}

func (m Model) renderBody() string {
	if m.taskForm != nil {
		return "New Task\n\n" + m.taskForm.View()
	}
	now := m.clock.Now()
	switch m.CurrentView {
	case ViewClients:
		if m.Clients.DetailID != "" {
			return m.detailViewport.View()
		}
		return views.RenderClients(views.ClientsData{
			Clients:  m.state.Clients,
			Projects: m.state.Projects,
			Cursor:   m.Clients.Cursor,
		})
	case ViewTasks:
		if m.Tasks.Board {
			return views.RenderKanban(views.KanbanData{
				Columns: insights.Columns(m.state.Tasks),
				Column:  m.Tasks.Column,
				Row:     m.Tasks.Row,
			})
		}
		return views.RenderTaskList(m.taskTable.View())
	case ViewCalendar:
		return m.renderCalendar(now)
	case ViewWorkspaces:
		return m.renderWorkspaces()
	default:
		return views.RenderDashboard(views.DashboardData{
			Overview: insights.BuildOverview(m.dataset(), now),
			Clients:  m.state.Clients,
			Now:      now,
		})
	}
}

func (m Model) renderWorkspaces() string {
	scores := insights.WorkspaceScores(m.dataset())
	rows := make([]views.WorkspaceRow, len(scores))
	for i, sc := range scores {
		rows[i] = views.WorkspaceRow{Score: sc, Bar: m.bar.ViewAs(float64(sc.Percent) / 100)}
	}
	return views.RenderWorkspaces(rows)
}

func isKnownView(v View) bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}
