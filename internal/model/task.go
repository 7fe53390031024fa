package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidCategory = errors.New("model: invalid task category")
)

type TaskStatus string

const (
	TaskStatusTodo     TaskStatus = "To-Do"
	TaskStatusWIP      TaskStatus = "WIP"
	TaskStatusDone     TaskStatus = "Done"
	TaskStatusApproved TaskStatus = "Approved"
	TaskStatusExecuted TaskStatus = "Executed"
)

// TaskStatuses lists every status in board order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusWIP,
	TaskStatusDone,
	TaskStatusApproved,
	TaskStatusExecuted,
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusWIP, TaskStatusDone, TaskStatusApproved, TaskStatusExecuted:
		return true
	default:
		return false
	}
}

// Next returns the following status in board order, wrapping after Executed.
func (s TaskStatus) Next() TaskStatus {
	i := slices.Index(TaskStatuses, s)
	if i < 0 {
		return TaskStatusTodo
	}
	return TaskStatuses[(i+1)%len(TaskStatuses)]
}

// Prev returns the preceding status in board order, wrapping before To-Do.
func (s TaskStatus) Prev() TaskStatus {
	i := slices.Index(TaskStatuses, s)
	if i < 0 {
		return TaskStatusTodo
	}
	return TaskStatuses[(i+len(TaskStatuses)-1)%len(TaskStatuses)]
}

func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch normalizeEnum(raw) {
	case "todo", "to-do":
		return TaskStatusTodo, nil
	case "wip", "inprogress", "in-progress":
		return TaskStatusWIP, nil
	case "done":
		return TaskStatusDone, nil
	case "approved":
		return TaskStatusApproved, nil
	case "executed":
		return TaskStatusExecuted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

func ParsePriority(raw string) (Priority, error) {
	for _, p := range Priorities {
		if normalizeEnum(string(p)) == normalizeEnum(raw) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

type Category string

const (
	CategorySocialMedia Category = "Social Media"
	CategoryAds         Category = "Ads"
	CategoryWebsite     Category = "Website"
	CategoryDesign      Category = "Design"
	CategoryContent     Category = "Content"
	CategoryOperations  Category = "Operations"
)

var Categories = []Category{
	CategorySocialMedia,
	CategoryAds,
	CategoryWebsite,
	CategoryDesign,
	CategoryContent,
	CategoryOperations,
}

func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if normalizeEnum(string(c)) == normalizeEnum(raw) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

type Task struct {
	ID            string
	ClientID      string
	ProjectID     string
	Title         string
	Description   string
	Category      Category
	Priority      Priority
	Status        TaskStatus
	AssigneeIDs   []string
	DueDate       time.Time
	CreatedAt     time.Time
	RemindersSent []ReminderTag
}

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	ClientID    string
	ProjectID   string
	Title       string
	Description string
	Category    Category
	Priority    Priority
	Status      TaskStatus
	AssigneeIDs []string
	DueDate     time.Time
}

func (t Task) HasReminder(tag ReminderTag) bool {
	return slices.Contains(t.RemindersSent, tag)
}

func (t Task) IsAssignedTo(workspaceID string) bool {
	return slices.Contains(t.AssigneeIDs, workspaceID)
}

// Clone returns a copy that shares no backing arrays with t.
func (t Task) Clone() Task {
	t.AssigneeIDs = slices.Clone(t.AssigneeIDs)
	t.RemindersSent = slices.Clone(t.RemindersSent)
	return t
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	for _, tag := range t.RemindersSent {
		if !tag.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidReminderTag, tag)
		}
	}
	return nil
}

func normalizeEnum(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(s), "")
}
