package update

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/store"
)

// DueInputLayout is the create form's due date format.
const DueInputLayout = "2006-01-02 15:04"

const (
	defaultLoginEmail    = "sraddha@gettingitdone.agency"
	defaultLoginPassword = "password123"
)

// loginBindings and taskBindings live on the heap so huh's Value pointers
// stay valid across Model copies.
type loginBindings struct {
	email    string
	password string
}

type loginForm struct {
	form *huh.Form
	fb   *loginBindings
}

func newLoginForm() *loginForm {
	fb := &loginBindings{email: defaultLoginEmail, password: defaultLoginPassword}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email Address").
				Value(&fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fb.password).
				Validate(validateRequired("Password")),
		),
	).WithShowHelp(false).WithWidth(48)
	return &loginForm{form: form, fb: fb}
}

func (f *loginForm) Init() tea.Cmd {
	return f.form.Init()
}

func (f *loginForm) Update(msg tea.Msg) tea.Cmd {
	mdl, cmd := f.form.Update(msg)
	if form, ok := mdl.(*huh.Form); ok {
		f.form = form
	}
	switch f.form.State {
	case huh.StateCompleted:
		user := strings.TrimSpace(f.fb.email)
		return func() tea.Msg { return LoginSubmittedMsg{User: user} }
	case huh.StateAborted:
		return tea.Quit
	}
	return cmd
}

func (f *loginForm) View() string {
	return f.form.View()
}

type taskBindings struct {
	title       string
	description string
	clientID    string
	projectID   string
	category    model.Category
	priority    model.Priority
	status      model.TaskStatus
	assignees   []string
	due         string
}

type taskForm struct {
	form *huh.Form
	fb   *taskBindings
	loc  *time.Location
}

// newTaskForm opens the create form with the dashboard defaults: Design,
// Medium, To-Do, the first client and its first project, due in 24 hours.
func newTaskForm(st store.State, now time.Time) *taskForm {
	fb := &taskBindings{
		category: model.CategoryDesign,
		priority: model.PriorityMedium,
		status:   model.TaskStatusTodo,
		due:      now.Add(24 * time.Hour).Format(DueInputLayout),
	}
	if len(st.Clients) > 0 {
		fb.clientID = st.Clients[0].ID
		fb.projectID = firstProjectOf(st.Projects, fb.clientID)
	}

	clientOpts := make([]huh.Option[string], 0, len(st.Clients))
	for _, c := range st.Clients {
		clientOpts = append(clientOpts, huh.NewOption(c.Name, c.ID))
	}
	projects := st.Projects
	projectOpts := func() []huh.Option[string] {
		opts := []huh.Option[string]{}
		for _, p := range projects {
			if p.ClientID == fb.clientID {
				opts = append(opts, huh.NewOption(p.Name, p.ID))
			}
		}
		if len(opts) == 0 {
			opts = append(opts, huh.NewOption("(no project)", ""))
		}
		return opts
	}
	assigneeOpts := make([]huh.Option[string], 0, len(st.Workspaces))
	for _, ws := range st.Workspaces {
		assigneeOpts = append(assigneeOpts, huh.NewOption(ws.Name, ws.ID))
	}

	loc := now.Location()
	fields := []huh.Field{
		huh.NewInput().
			Title("Task").
			Placeholder("What needs to be done?").
			Value(&fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details (markdown)").
			Value(&fb.description),
		huh.NewSelect[string]().
			Title("Client").
			Options(clientOpts...).
			Value(&fb.clientID),
		huh.NewSelect[string]().
			Title("Project").
			OptionsFunc(projectOpts, &fb.clientID).
			Value(&fb.projectID),
		huh.NewSelect[model.Category]().
			Title("Category").
			Options(enumOptions(model.Categories)...).
			Value(&fb.category),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(enumOptions(model.Priorities)...).
			Value(&fb.priority),
		huh.NewSelect[model.TaskStatus]().
			Title("Status").
			Options(enumOptions(model.TaskStatuses)...).
			Value(&fb.status),
	}
	if len(assigneeOpts) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Assignee").
			Options(assigneeOpts...).
			Value(&fb.assignees))
	}
	fields = append(fields, huh.NewInput().
		Title("Due Date").
		Placeholder("YYYY-MM-DD HH:MM").
		Value(&fb.due).
		Validate(func(s string) error {
			_, err := parseDueInput(s, loc)
			return err
		}))

	form := huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false).WithWidth(72)
	return &taskForm{form: form, fb: fb, loc: loc}
}

func (f *taskForm) Init() tea.Cmd {
	return f.form.Init()
}

func (f *taskForm) Update(msg tea.Msg) tea.Cmd {
	mdl, cmd := f.form.Update(msg)
	if form, ok := mdl.(*huh.Form); ok {
		f.form = form
	}
	switch f.form.State {
	case huh.StateCompleted:
		in := f.input()
		return func() tea.Msg { return TaskFormSubmittedMsg{Input: in} }
	case huh.StateAborted:
		return func() tea.Msg { return FormCancelledMsg{} }
	}
	return cmd
}

func (f *taskForm) View() string {
	return f.form.View()
}

func (f *taskForm) input() model.TaskInput {
	due, _ := parseDueInput(f.fb.due, f.loc)
	return model.TaskInput{
		ClientID:    f.fb.clientID,
		ProjectID:   f.fb.projectID,
		Title:       strings.TrimSpace(f.fb.title),
		Description: strings.TrimSpace(f.fb.description),
		Category:    f.fb.category,
		Priority:    f.fb.priority,
		Status:      f.fb.status,
		AssigneeIDs: append([]string(nil), f.fb.assignees...),
		DueDate:     due,
	}
}

// quickTaskInput is what the palette's new command creates: the form
// defaults with only a title.
func quickTaskInput(st store.State, title string, now time.Time) model.TaskInput {
	in := model.TaskInput{
		Title:    title,
		Category: model.CategoryDesign,
		Priority: model.PriorityMedium,
		Status:   model.TaskStatusTodo,
		DueDate:  now.Add(24 * time.Hour),
	}
	if len(st.Clients) > 0 {
		in.ClientID = st.Clients[0].ID
		in.ProjectID = firstProjectOf(st.Projects, in.ClientID)
	}
	return in
}

func parseDueInput(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DueInputLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, errors.New("invalid due date, use YYYY-MM-DD HH:MM")
	}
	return t, nil
}

func firstProjectOf(projects []model.Project, clientID string) string {
	for _, p := range projects {
		if p.ClientID == clientID {
			return p.ID
		}
	}
	return ""
}

func enumOptions[T ~string](values []T) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), v)
	}
	return opts
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
