package reminder

import (
	"testing"
	"time"

	"github.com/sandeepkv93/agencyd/internal/model"
)

var base = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func taskDueIn(id string, d time.Duration) model.Task {
	return model.Task{
		ID:       id,
		Title:    "Task " + id,
		Status:   model.TaskStatusWIP,
		Priority: model.PriorityMedium,
		DueDate:  base.Add(d),
	}
}

func TestEvaluateWindows(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want model.ReminderTag
	}{
		{"25 hours out", 25 * time.Hour, ""},
		{"exactly 24 hours", 24 * time.Hour, model.ReminderOneDay},
		{"20 hours", 20 * time.Hour, model.ReminderOneDay},
		{"90 minutes fires 1d first", 90 * time.Minute, model.ReminderOneDay},
		{"due now", 0, ""},
		{"an hour late", -time.Hour, ""},
	}
	for _, tc := range cases {
		due := Evaluate([]model.Task{taskDueIn("t-1", tc.in)}, base)
		if tc.want == "" {
			if len(due) != 0 {
				t.Fatalf("%s: expected no reminder, got %+v", tc.name, due)
			}
			continue
		}
		if len(due) != 1 || due[0].Threshold.Tag != tc.want {
			t.Fatalf("%s: expected %s, got %+v", tc.name, tc.want, due)
		}
	}
}

func TestEvaluateSkipsSentTags(t *testing.T) {
	task := taskDueIn("t-1", 90*time.Minute)
	task.RemindersSent = []model.ReminderTag{model.ReminderOneDay}
	due := Evaluate([]model.Task{task}, base)
	if len(due) != 1 || due[0].Threshold.Tag != model.ReminderTwoHours {
		t.Fatalf("expected 2h reminder, got %+v", due)
	}

	task.RemindersSent = append(task.RemindersSent, model.ReminderTwoHours)
	if due := Evaluate([]model.Task{task}, base); len(due) != 0 {
		t.Fatalf("expected nothing once both tags are sent, got %+v", due)
	}
}

func TestEvaluateSkipsExecutedAndUndated(t *testing.T) {
	executed := taskDueIn("t-1", time.Hour)
	executed.Status = model.TaskStatusExecuted
	undated := taskDueIn("t-2", time.Hour)
	undated.DueDate = time.Time{}

	if due := Evaluate([]model.Task{executed, undated}, base); len(due) != 0 {
		t.Fatalf("expected no reminders, got %+v", due)
	}
}

func TestEvaluateKeepsTaskOrder(t *testing.T) {
	tasks := []model.Task{
		taskDueIn("t-3", 3*time.Hour),
		taskDueIn("t-1", 30*time.Hour),
		taskDueIn("t-2", time.Hour),
	}
	due := Evaluate(tasks, base)
	if len(due) != 2 || due[0].TaskID != "t-3" || due[1].TaskID != "t-2" {
		t.Fatalf("unexpected order: %+v", due)
	}
}

func TestPayloadText(t *testing.T) {
	due, ok := Check(model.Task{ID: "t-1", Title: "Ad copy", Status: model.TaskStatusTodo, DueDate: base.Add(20 * time.Hour)}, base)
	if !ok {
		t.Fatal("expected reminder")
	}
	p := due.Payload()
	if p.Title != "Deadline Approaching (1 Day)" || p.Message != `Task "Ad copy" is due in 24 hours.` || p.Urgent {
		t.Fatalf("unexpected 1d payload: %+v", p)
	}

	task := model.Task{ID: "t-1", Title: "Ad copy", Status: model.TaskStatusTodo, DueDate: base.Add(time.Hour), RemindersSent: []model.ReminderTag{model.ReminderOneDay}}
	due, ok = Check(task, base)
	if !ok {
		t.Fatal("expected 2h reminder")
	}
	p = due.Payload()
	if p.Title != "Urgent Deadline (2 Hours)" || p.Message != `Task "Ad copy" is due in less than 2 hours.` || !p.Urgent {
		t.Fatalf("unexpected 2h payload: %+v", p)
	}
}
