// Package insights derives read-only view data from a store snapshot.
package insights

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/agencyd/internal/model"
)

const attentionLimit = 5

type StatusCount struct {
	Status model.TaskStatus
	Count  int
}

type Workload struct {
	WorkspaceID string
	Name        string
	Tasks       int
}

type Overview struct {
	TotalClients  int
	TotalProjects int
	TotalTasks    int
	Overdue       int
	// Distribution lists only statuses with at least one task.
	Distribution   []StatusCount
	Workload       []Workload
	NeedsAttention []model.Task
}

// IsOverdue reports whether t is past due and not yet executed.
func IsOverdue(t model.Task, now time.Time) bool {
	return !t.DueDate.IsZero() && t.DueDate.Before(now) && t.Status != model.TaskStatusExecuted
}

// IsDueToday reports whether t falls due on now's calendar day and is not
// yet executed.
func IsDueToday(t model.Task, now time.Time) bool {
	if t.DueDate.IsZero() || t.Status == model.TaskStatusExecuted {
		return false
	}
	return SameDay(t.DueDate.In(now.Location()), now)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func BuildOverview(data model.Dataset, now time.Time) Overview {
	ov := Overview{
		TotalClients:  len(data.Clients),
		TotalProjects: len(data.Projects),
		TotalTasks:    len(data.Tasks),
	}

	counts := make(map[model.TaskStatus]int, len(model.TaskStatuses))
	var overdue, today []model.Task
	for _, t := range data.Tasks {
		counts[t.Status]++
		switch {
		case IsOverdue(t, now):
			overdue = append(overdue, t)
		case IsDueToday(t, now):
			today = append(today, t)
		}
	}
	ov.Overdue = len(overdue)

	for _, st := range model.TaskStatuses {
		if counts[st] > 0 {
			ov.Distribution = append(ov.Distribution, StatusCount{Status: st, Count: counts[st]})
		}
	}

	for _, ws := range data.Workspaces {
		n := 0
		for _, t := range data.Tasks {
			if t.IsAssignedTo(ws.ID) {
				n++
			}
		}
		ov.Workload = append(ov.Workload, Workload{WorkspaceID: ws.ID, Name: ShortName(ws.Name), Tasks: n})
	}

	attention := append(overdue, today...)
	if len(attention) > attentionLimit {
		attention = attention[:attentionLimit]
	}
	for _, t := range attention {
		ov.NeedsAttention = append(ov.NeedsAttention, t.Clone())
	}
	return ov
}

// ShortName cuts a workspace name at its first apostrophe, so
// "Sraddha's Workspace" becomes "Sraddha".
func ShortName(name string) string {
	if i := strings.IndexByte(name, '\''); i >= 0 {
		return name[:i]
	}
	return name
}

type Column struct {
	Status model.TaskStatus
	Tasks  []model.Task
}

// Columns groups tasks by status in board order, keeping collection order
// within a column. Every status gets a column, empty or not.
func Columns(tasks []model.Task) []Column {
	cols := make([]Column, len(model.TaskStatuses))
	for i, st := range model.TaskStatuses {
		cols[i].Status = st
	}
	for _, t := range tasks {
		i := slices.Index(model.TaskStatuses, t.Status)
		if i < 0 {
			continue
		}
		cols[i].Tasks = append(cols[i].Tasks, t.Clone())
	}
	return cols
}

type ClientView struct {
	Client   model.Client
	Projects []model.Project
	// Timeline holds the client's tasks by due date, undated tasks last.
	Timeline []model.Task
}

func ClientDetail(data model.Dataset, clientID string) (ClientView, bool) {
	idx := slices.IndexFunc(data.Clients, func(c model.Client) bool { return c.ID == clientID })
	if idx < 0 {
		return ClientView{}, false
	}
	view := ClientView{Client: data.Clients[idx]}
	for _, p := range data.Projects {
		if p.ClientID == clientID {
			view.Projects = append(view.Projects, p)
		}
	}
	for _, t := range data.Tasks {
		if t.ClientID == clientID {
			view.Timeline = append(view.Timeline, t.Clone())
		}
	}
	slices.SortStableFunc(view.Timeline, func(a, b model.Task) int {
		switch {
		case a.DueDate.IsZero() && b.DueDate.IsZero():
			return 0
		case a.DueDate.IsZero():
			return 1
		case b.DueDate.IsZero():
			return -1
		}
		return a.DueDate.Compare(b.DueDate)
	})
	return view, true
}

type Score struct {
	Workspace model.Workspace
	Total     int
	Executed  int
	// Percent is round(executed/total*100), 0 without tasks.
	Percent int
}

func WorkspaceScores(data model.Dataset) []Score {
	out := make([]Score, 0, len(data.Workspaces))
	for _, ws := range data.Workspaces {
		sc := Score{Workspace: ws}
		for _, t := range data.Tasks {
			if !t.IsAssignedTo(ws.ID) {
				continue
			}
			sc.Total++
			if t.Status == model.TaskStatusExecuted {
				sc.Executed++
			}
		}
		if sc.Total > 0 {
			sc.Percent = int(math.Round(float64(sc.Executed) / float64(sc.Total) * 100))
		}
		out = append(out, sc)
	}
	return out
}

// ClientName resolves a client id for display, falling back to the id.
func ClientName(clients []model.Client, id string) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

func ProjectName(projects []model.Project, id string) string {
	for _, p := range projects {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
