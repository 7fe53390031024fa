package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/scheduler"
	"github.com/sandeepkv93/agencyd/internal/session"
	"github.com/sandeepkv93/agencyd/internal/store"
)

type View string

const (
	ViewDashboard  View = "Dashboard"
	ViewClients    View = "Clients"
	ViewTasks      View = "Tasks"
	ViewCalendar   View = "Calendar"
	ViewWorkspaces View = "Workspaces"
)

// Views lists the screens in tab order; key 1 selects the first.
var Views = []View{ViewDashboard, ViewClients, ViewTasks, ViewCalendar, ViewWorkspaces}

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Dashboard     key.Binding
	Clients       key.Binding
	Tasks         key.Binding
	Calendar      key.Binding
	Workspaces    key.Binding
	Palette       key.Binding
	Help          key.Binding
	Notifications key.Binding
	ClearAlerts   key.Binding
	DismissToast  key.Binding
	Presence      key.Binding
	Logout        key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dashboard:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Clients:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "clients")),
		Tasks:         key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "tasks")),
		Calendar:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "calendar")),
		Workspaces:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "workspaces")),
		Palette:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command palette")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Notifications: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		ClearAlerts:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear notifications")),
		DismissToast:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss toast")),
		Presence:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle presence")),
		Logout:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type TasksState struct {
	// Board shows the kanban; otherwise the table list.
	Board  bool
	Column int
	Row    int
}

type ClientsState struct {
	Cursor int
	// DetailID is the client whose detail page is open.
	DetailID string
}

type CalendarState struct {
	Selected time.Time
	Filter   insights.CalendarFilter
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView       View
	Status            StatusBar
	Keys              KeyMap
	Quitting          bool
	LastError         error
	HelpVisible       bool
	NotificationsOpen bool
	Palette           CommandPaletteState
	Tasks             TasksState
	Clients           ClientsState
	Calendar          CalendarState

	state    store.State
	store    *store.Store
	sessions *session.Manager
	clock    clock.Clock
	engine   *scheduler.Engine
	changes  <-chan store.Change

	login    *loginForm
	taskForm *taskForm

	taskTable      table.Model
	commandInput   textinput.Model
	helpModel      help.Model
	detailViewport viewport.Model
	bar            progress.Model
	// rendered markdown, cached by owner id and source text
	taskDesc       string
	taskDescKey    string
	clientDesc     string
	width          int
	height         int
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// StoreChangedMsg reports a store mutation; the model re-reads its snapshot.
type StoreChangedMsg struct {
	Kind store.ChangeKind
}

type ReminderFiredMsg struct {
	Event scheduler.Event
}

type LoginSubmittedMsg struct {
	User string
}

type TaskFormSubmittedMsg struct {
	Input model.TaskInput
}

type FormCancelledMsg struct{}

// NewModel builds the TUI over a store and its session manager. The model
// subscribes to store changes for its whole life. A nil clock uses wall time.
func NewModel(sessions *session.Manager, clk clock.Clock) Model {
	if clk == nil {
		clk = clock.Real{}
	}
	s := sessions.Store()
	_, changes := s.Subscribe(32)
	m := Model{
		CurrentView: ViewDashboard,
		Keys:        DefaultKeyMap(),
		Tasks:       TasksState{Board: true},
		Calendar:    CalendarState{Selected: clk.Now(), Filter: insights.FilterAll},
		store:       s,
		sessions:    sessions,
		clock:       clk,
		engine:      sessions.Engine(),
		changes:     changes,
	}
	m.initBubbleComponents()
	m.refresh()
	if !m.state.Session.LoggedIn {
		m.login = newLoginForm()
	}
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Task", Width: 30},
		{Title: "Client", Width: 14},
		{Title: "Priority", Width: 8},
		{Title: "Status", Width: 9},
		{Title: "Due", Width: 12},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()
	m.detailViewport = viewport.New(74, 18)
	m.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))
}
