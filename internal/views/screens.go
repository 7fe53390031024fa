package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/agencyd/internal/insights"
	"github.com/sandeepkv93/agencyd/internal/model"
)

const dueLayout = "Jan 02 15:04"

type HeaderData struct {
	Product  string
	User     string
	Presence model.UserStatus
	Unread   int
	View     string
}

func RenderHeader(data HeaderData) string {
	bell := "bell: 0"
	if data.Unread > 0 {
		bell = urgentStyle.Render(fmt.Sprintf("bell: %d", data.Unread))
	}
	return fmt.Sprintf("%s | view: %s | %s (%s) | %s", data.Product, data.View, data.User, data.Presence, bell)
}

func RenderLogin(form string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Getting It Done") + "\n")
	b.WriteString(mutedStyle.Render("Internal Agency OS") + "\n\n")
	b.WriteString(form)
	b.WriteString("\n" + mutedStyle.Render("Agency OS v2.0 | Restricted Internal Use Only"))
	return panelStyle.Render(b.String())
}

type DashboardData struct {
	Overview insights.Overview
	Clients  []model.Client
	Now      time.Time
}

func RenderDashboard(data DashboardData) string {
	ov := data.Overview
	var b strings.Builder
	b.WriteString(titleStyle.Render("Agency Overview") + "\n")
	b.WriteString(mutedStyle.Render("Real-time health report of all clients and workspaces.") + "\n\n")
	overdue := fmt.Sprintf("%d", ov.Overdue)
	if ov.Overdue > 0 {
		overdue = urgentStyle.Render(overdue)
	}
	b.WriteString(fmt.Sprintf("clients: %d  projects: %d  tasks: %d  overdue: %s\n", ov.TotalClients, ov.TotalProjects, ov.TotalTasks, overdue))

	b.WriteString("\nTask Distribution:\n")
	if len(ov.Distribution) == 0 {
		b.WriteString("  (no tasks)\n")
	}
	for _, sc := range ov.Distribution {
		b.WriteString(fmt.Sprintf("  %-9s %s %d\n", sc.Status, strings.Repeat("#", sc.Count), sc.Count))
	}

	b.WriteString("\nWorkload per Workspace:\n")
	for _, w := range ov.Workload {
		b.WriteString(fmt.Sprintf("  %-20s %d\n", w.Name, w.Tasks))
	}

	b.WriteString("\nPriority Items:\n")
	if len(ov.NeedsAttention) == 0 {
		b.WriteString("  (nothing overdue or due today)\n")
	}
	for _, t := range ov.NeedsAttention {
		line := fmt.Sprintf("  %s | %s | %s | %s", t.Title, insights.ClientName(data.Clients, t.ClientID), t.Status, formatDue(t.DueDate))
		if insights.IsOverdue(t, data.Now) {
			line = urgentStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

type ClientsData struct {
	Clients  []model.Client
	Projects []model.Project
	Cursor   int
}

func RenderClients(data ClientsData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Clients") + "\n")
	b.WriteString(mutedStyle.Render("Manage all agency partners and revenue sources.") + "\n\n")
	if len(data.Clients) == 0 {
		b.WriteString("(no clients)")
		return b.String()
	}
	for i, c := range data.Clients {
		projects := 0
		for _, p := range data.Projects {
			if p.ClientID == c.ID {
				projects++
			}
		}
		b.WriteString(fmt.Sprintf("%s %-18s %-9s $%-7d projects: %d\n", cursor(i == data.Cursor), c.Name, c.EngagementType, c.RetainershipAmount, projects))
		b.WriteString(mutedStyle.Render("    "+strings.Join(c.Services, ", ")) + "\n")
	}
	b.WriteString("\nactions: [j/k]move [enter]open")
	return strings.TrimSpace(b.String())
}

type ProjectRow struct {
	Project model.Project
	// Bar is a pre-rendered progress bar.
	Bar string
}

type ClientDetailData struct {
	View        insights.ClientView
	Projects    []ProjectRow
	Description string
	Now         time.Time
}

func RenderClientDetail(data ClientDetailData) string {
	c := data.View.Client
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name) + "\n")
	if data.Description != "" {
		b.WriteString(data.Description + "\n")
	}
	b.WriteString(fmt.Sprintf("Monthly Retainer: $%d (%s)\n", c.RetainershipAmount, c.EngagementType))
	b.WriteString("services: " + strings.Join(c.Services, ", ") + "\n")

	b.WriteString("\nProjects:\n")
	if len(data.Projects) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, row := range data.Projects {
		b.WriteString(fmt.Sprintf("  %-26s %-9s %s\n", row.Project.Name, row.Project.Status, row.Bar))
	}

	b.WriteString("\nExecution Timeline:\n")
	if len(data.View.Timeline) == 0 {
		b.WriteString("  No active tasks for this client.\n")
	}
	for _, t := range data.View.Timeline {
		line := fmt.Sprintf("  %s  %-9s %s", formatDue(t.DueDate), t.Status, t.Title)
		if insights.IsOverdue(t, data.Now) {
			line = urgentStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\nactions: [esc]back")
	return strings.TrimSpace(b.String())
}

type KanbanData struct {
	Columns []insights.Column
	Column  int
	Row     int
}

func RenderKanban(data KanbanData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Management") + "  " + mutedStyle.Render("board") + "\n")
	for ci, col := range data.Columns {
		header := fmt.Sprintf("%s (%d)", col.Status, len(col.Tasks))
		if ci == data.Column {
			header = selectedStyle.Render(header)
		}
		b.WriteString("\n" + header + "\n")
		if len(col.Tasks) == 0 {
			b.WriteString(mutedStyle.Render("  (empty)") + "\n")
		}
		for ri, t := range col.Tasks {
			b.WriteString(fmt.Sprintf("%s %s %s  %s\n", cursor(ci == data.Column && ri == data.Row), priorityBadge(t.Priority), t.Title, mutedStyle.Render(formatDue(t.DueDate))))
		}
	}
	b.WriteString("\nactions: [h/l]column [j/k]task [ [/] ]status [v]list [n]new")
	return strings.TrimSpace(b.String())
}

func RenderTaskList(table string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Management") + "  " + mutedStyle.Render("list") + "\n")
	b.WriteString(table + "\n")
	b.WriteString("\nactions: [j/k]move [ [/] ]status [v]board [n]new")
	return b.String()
}

type TaskDetailData struct {
	Task        model.Task
	ClientName  string
	ProjectName string
	Assignees   []string
	Description string
}

func RenderTaskDetail(data TaskDetailData) string {
	t := data.Task
	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Title) + "\n")
	b.WriteString(fmt.Sprintf("id: %s\n", t.ID))
	b.WriteString(fmt.Sprintf("client: %s / %s\n", data.ClientName, data.ProjectName))
	b.WriteString(fmt.Sprintf("category: %s\npriority: %s\nstatus: %s\n", t.Category, t.Priority, t.Status))
	b.WriteString(fmt.Sprintf("due: %s\n", formatDue(t.DueDate)))
	if len(data.Assignees) > 0 {
		b.WriteString("assignees: " + strings.Join(data.Assignees, ", ") + "\n")
	}
	if len(t.RemindersSent) > 0 {
		tags := make([]string, len(t.RemindersSent))
		for i, r := range t.RemindersSent {
			tags[i] = string(r)
		}
		b.WriteString("reminders sent: " + strings.Join(tags, ", ") + "\n")
	}
	if data.Description != "" {
		b.WriteString("\n" + data.Description)
	}
	return strings.TrimSpace(b.String())
}

type CalendarData struct {
	Grid     insights.MonthGrid
	Today    time.Time
	Selected time.Time
	Filter   insights.CalendarFilter
	Agenda   insights.Day
}

func RenderCalendar(data CalendarData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Agency Schedule") + "  " + mutedStyle.Render("filter: "+string(data.Filter)) + "\n")
	b.WriteString(fmt.Sprintf("%s %d\n", data.Grid.Month, data.Grid.Year))
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for i, cell := range data.Grid.Cells {
		if cell.Blank() {
			b.WriteString("    ")
		} else {
			b.WriteString(dayCell(cell, data.Today, data.Selected))
		}
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n" + data.Agenda.Date.Format("Mon Jan 02") + ":\n")
	if len(data.Agenda.Meetings) == 0 && len(data.Agenda.Tasks) == 0 {
		b.WriteString("  (nothing scheduled)\n")
	}
	for _, m := range data.Agenda.Meetings {
		b.WriteString(fmt.Sprintf("  [MEETING] %s %s (%s)\n", m.Time.Format("15:04"), m.Title, m.Duration))
	}
	for _, t := range data.Agenda.Tasks {
		b.WriteString(fmt.Sprintf("  [TASK] %s %s - %s\n", t.DueDate.Format("15:04"), t.Title, t.Status))
	}
	b.WriteString("\nactions: [h/l]day [j/k]week [</>]month [t]today [f]filter")
	return strings.TrimSpace(b.String())
}

func dayCell(d insights.Day, today, selected time.Time) string {
	marker := " "
	switch {
	case len(d.Meetings) > 0 && len(d.Tasks) > 0:
		marker = "*"
	case len(d.Meetings) > 0:
		marker = "m"
	case len(d.Tasks) > 0:
		marker = "t"
	}
	cell := fmt.Sprintf("%3d%s", d.Date.Day(), marker)
	switch {
	case insights.SameDay(d.Date, selected):
		return selectedStyle.Render(cell)
	case insights.SameDay(d.Date, today):
		return infoStyle.Render(cell)
	default:
		return cell
	}
}

type WorkspaceRow struct {
	Score insights.Score
	Bar   string
}

func RenderWorkspaces(rows []WorkspaceRow) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Workspaces") + "\n")
	b.WriteString(mutedStyle.Render("Shared visibility of individual ownership across the agency.") + "\n\n")
	for _, row := range rows {
		sc := row.Score
		b.WriteString(fmt.Sprintf("%s\n", titleStyle.Render(sc.Workspace.Name)))
		b.WriteString(fmt.Sprintf("  Active Tasks: %d  Executed: %d\n", sc.Total-sc.Executed, sc.Executed))
		b.WriteString(fmt.Sprintf("  Execution Score: %s %d%%\n\n", row.Bar, sc.Percent))
	}
	return strings.TrimSpace(b.String())
}

func RenderNotificationsPanel(items []model.Notification) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications") + "\n")
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("No new alerts"))
		return b.String()
	}
	for _, n := range items {
		title := infoStyle.Render(n.Title)
		if n.Urgent {
			title = urgentStyle.Render(n.Title)
		}
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n", title, mutedStyle.Render(n.Time), n.Message))
	}
	b.WriteString("\nactions: [C]clear [N]close")
	return strings.TrimSpace(b.String())
}

func RenderToast(n *model.Notification) string {
	if n == nil {
		return ""
	}
	body := titleStyle.Render(n.Title) + "\n" + n.Message + "  " + mutedStyle.Render("[x]")
	if n.Urgent {
		return urgentToast.Render(body)
	}
	return toastStyle.Render(body)
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(input string, hints []string) string {
	out := "command: " + input
	if len(hints) > 0 {
		out += "\n" + mutedStyle.Render(strings.Join(hints, "  "))
	}
	return out
}

func priorityBadge(p model.Priority) string {
	switch p {
	case model.PriorityUrgent:
		return urgentStyle.Render("[!!]")
	case model.PriorityHigh:
		return selectedStyle.Render("[! ]")
	default:
		return mutedStyle.Render("[  ]")
	}
}

func formatDue(t time.Time) string {
	if t.IsZero() {
		return "no due date"
	}
	return t.Format(dueLayout)
}
