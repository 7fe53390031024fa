// Package seed supplies the records a store starts from: either the built-in
// fixtures or a YAML file whose times may be written relative to load time.
package seed

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/agencyd/internal/model"
)

var (
	ErrDuplicateID = errors.New("seed: duplicate id")
	ErrBadTime     = errors.New("seed: unparseable time")
)

// Warning describes a record that loaded with a degraded field.
type Warning struct {
	Record string
	Field  string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s.%s: %v", w.Record, w.Field, w.Err)
}

type fileData struct {
	Workspaces []workspaceRecord `yaml:"workspaces"`
	Clients    []clientRecord    `yaml:"clients"`
	Projects   []projectRecord   `yaml:"projects"`
	Meetings   []meetingRecord   `yaml:"meetings"`
	Tasks      []taskRecord      `yaml:"tasks"`
}

type workspaceRecord struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

type clientRecord struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	RetainershipAmount int      `yaml:"retainership_amount"`
	EngagementType     string   `yaml:"engagement_type"`
	Services           []string `yaml:"services"`
	Description        string   `yaml:"description"`
}

type projectRecord struct {
	ID       string `yaml:"id"`
	ClientID string `yaml:"client_id"`
	Name     string `yaml:"name"`
	Status   string `yaml:"status"`
	Progress int    `yaml:"progress"`
}

type meetingRecord struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Time         string   `yaml:"time"`
	Duration     string   `yaml:"duration"`
	Participants []string `yaml:"participants"`
	Link         string   `yaml:"link"`
}

type taskRecord struct {
	ID            string   `yaml:"id"`
	ClientID      string   `yaml:"client_id"`
	ProjectID     string   `yaml:"project_id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Priority      string   `yaml:"priority"`
	Status        string   `yaml:"status"`
	AssigneeIDs   []string `yaml:"assignee_ids"`
	Due           string   `yaml:"due"`
	CreatedAt     string   `yaml:"created_at"`
	RemindersSent []string `yaml:"reminders_sent"`
}

// LoadFile reads a YAML seed file. See Parse.
func LoadFile(path string, now time.Time) (model.Dataset, []Warning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Dataset{}, nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw, now)
}

// Parse decodes a YAML seed. Invalid enums and duplicate ids are errors. A
// task due date that cannot be parsed loads as the zero time, which the
// reminder scheduler treats as never due, and is reported as a warning.
func Parse(raw []byte, now time.Time) (model.Dataset, []Warning, error) {
	var file fileData
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return model.Dataset{}, nil, fmt.Errorf("decode seed: %w", err)
	}

	var (
		out      model.Dataset
		warnings []Warning
	)

	seen := map[string]bool{}
	for _, r := range file.Workspaces {
		if err := claim(seen, "workspace", r.ID); err != nil {
			return model.Dataset{}, nil, err
		}
		out.Workspaces = append(out.Workspaces, model.Workspace{ID: r.ID, Name: r.Name, Avatar: r.Avatar})
	}

	seen = map[string]bool{}
	for _, r := range file.Clients {
		if err := claim(seen, "client", r.ID); err != nil {
			return model.Dataset{}, nil, err
		}
		c := model.Client{
			ID:                 r.ID,
			Name:               r.Name,
			RetainershipAmount: r.RetainershipAmount,
			EngagementType:     model.EngagementType(r.EngagementType),
			Services:           r.Services,
			Description:        r.Description,
		}
		if c.EngagementType == "" {
			c.EngagementType = model.EngagementRetainer
		}
		if err := c.Validate(); err != nil {
			return model.Dataset{}, nil, fmt.Errorf("client %s: %w", r.ID, err)
		}
		out.Clients = append(out.Clients, c)
	}

	seen = map[string]bool{}
	for _, r := range file.Projects {
		if err := claim(seen, "project", r.ID); err != nil {
			return model.Dataset{}, nil, err
		}
		p := model.Project{ID: r.ID, ClientID: r.ClientID, Name: r.Name, Status: model.ProjectStatus(r.Status), Progress: r.Progress}
		if p.Status == "" {
			p.Status = model.ProjectActive
		}
		if err := p.Validate(); err != nil {
			return model.Dataset{}, nil, fmt.Errorf("project %s: %w", r.ID, err)
		}
		out.Projects = append(out.Projects, p)
	}

	seen = map[string]bool{}
	for _, r := range file.Meetings {
		if err := claim(seen, "meeting", r.ID); err != nil {
			return model.Dataset{}, nil, err
		}
		at, err := ParseWhen(r.Time, now)
		if err != nil {
			warnings = append(warnings, Warning{Record: "meeting " + r.ID, Field: "time", Err: err})
		}
		out.Meetings = append(out.Meetings, model.Meeting{
			ID:           r.ID,
			Title:        r.Title,
			Time:         at,
			Duration:     r.Duration,
			Participants: r.Participants,
			Link:         r.Link,
		})
	}

	seen = map[string]bool{}
	for _, r := range file.Tasks {
		if err := claim(seen, "task", r.ID); err != nil {
			return model.Dataset{}, nil, err
		}
		task, taskWarnings, err := buildTask(r, now)
		if err != nil {
			return model.Dataset{}, nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		warnings = append(warnings, taskWarnings...)
		out.Tasks = append(out.Tasks, task)
	}

	return out, warnings, nil
}

func buildTask(r taskRecord, now time.Time) (model.Task, []Warning, error) {
	var warnings []Warning
	task := model.Task{
		ID:          r.ID,
		ClientID:    r.ClientID,
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Category:    model.CategoryDesign,
		Priority:    model.PriorityMedium,
		Status:      model.TaskStatusTodo,
		AssigneeIDs: r.AssigneeIDs,
	}

	var err error
	if r.Category != "" {
		if task.Category, err = model.ParseCategory(r.Category); err != nil {
			return model.Task{}, nil, err
		}
	}
	if r.Priority != "" {
		if task.Priority, err = model.ParsePriority(r.Priority); err != nil {
			return model.Task{}, nil, err
		}
	}
	if r.Status != "" {
		if task.Status, err = model.ParseTaskStatus(r.Status); err != nil {
			return model.Task{}, nil, err
		}
	}
	for _, tag := range r.RemindersSent {
		task.RemindersSent = append(task.RemindersSent, model.ReminderTag(tag))
	}

	if task.DueDate, err = ParseWhen(r.Due, now); err != nil {
		warnings = append(warnings, Warning{Record: "task " + r.ID, Field: "due", Err: err})
	}
	task.CreatedAt, err = ParseWhen(r.CreatedAt, now)
	if err != nil || task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}

	if err := task.Validate(); err != nil {
		return model.Task{}, nil, err
	}
	return task, warnings, nil
}

// ParseWhen accepts RFC3339, "now", or an offset from now such as "+90m",
// "-1h" or "+2d". An empty string is the zero time. On error the zero time
// is returned together with ErrBadTime.
func ParseWhen(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return time.Time{}, nil
	case strings.EqualFold(s, "now"):
		return now, nil
	case s[0] == '+' || s[0] == '-':
		if strings.HasSuffix(s, "d") {
			days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, raw)
			}
			return now.AddDate(0, 0, days), nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, raw)
		}
		return now.Add(d), nil
	default:
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, raw)
		}
		return t, nil
	}
}

func claim(seen map[string]bool, kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("seed: %s id is required", kind)
	}
	if seen[id] {
		return fmt.Errorf("%w: %s %s", ErrDuplicateID, kind, id)
	}
	seen[id] = true
	return nil
}
