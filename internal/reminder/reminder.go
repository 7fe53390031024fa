// Package reminder decides which deadline reminders are due for a set of
// tasks at a given instant. It holds no state; the store records which tags
// have fired.
package reminder

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/agencyd/internal/model"
)

type Threshold struct {
	Tag    model.ReminderTag
	Window time.Duration
	Urgent bool
	Title  string
	// Format takes the task title.
	Format string
}

// Thresholds are checked in this order, widest window first.
var Thresholds = []Threshold{
	{
		Tag:    model.ReminderOneDay,
		Window: 24 * time.Hour,
		Title:  "Deadline Approaching (1 Day)",
		Format: `Task "%s" is due in 24 hours.`,
	},
	{
		Tag:    model.ReminderTwoHours,
		Window: 2 * time.Hour,
		Urgent: true,
		Title:  "Urgent Deadline (2 Hours)",
		Format: `Task "%s" is due in less than 2 hours.`,
	},
}

type Due struct {
	TaskID    string
	TaskTitle string
	Threshold Threshold
}

func (d Due) Payload() model.NotificationPayload {
	return model.NotificationPayload{
		Title:   d.Threshold.Title,
		Message: fmt.Sprintf(d.Threshold.Format, d.TaskTitle),
		Urgent:  d.Threshold.Urgent,
	}
}

// Evaluate returns the reminders due at now, in task order. A task yields at
// most one reminder per call: the first threshold whose window contains the
// remaining time and whose tag has not fired yet. Executed tasks, tasks past
// due and tasks without a due date yield nothing.
func Evaluate(tasks []model.Task, now time.Time) []Due {
	var out []Due
	for _, task := range tasks {
		if d, ok := Check(task, now); ok {
			out = append(out, d)
		}
	}
	return out
}

func Check(task model.Task, now time.Time) (Due, bool) {
	if task.Status == model.TaskStatusExecuted || task.DueDate.IsZero() {
		return Due{}, false
	}
	left := task.DueDate.Sub(now)
	if left <= 0 {
		return Due{}, false
	}
	for _, th := range Thresholds {
		if left <= th.Window && !task.HasReminder(th.Tag) {
			return Due{TaskID: task.ID, TaskTitle: task.Title, Threshold: th}, true
		}
	}
	return Due{}, false
}
