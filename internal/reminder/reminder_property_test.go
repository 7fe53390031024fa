package reminder

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/sandeepkv93/agencyd/internal/model"
)

// simulate runs ticks over tasks, stamping tags the way the store does, and
// returns the fired tags per task in firing order.
func simulate(tasks []model.Task, start time.Time, ticks []time.Duration) map[string][]model.ReminderTag {
	fired := make(map[string][]model.ReminderTag)
	now := start
	for _, step := range ticks {
		now = now.Add(step)
		for _, due := range Evaluate(tasks, now) {
			for i := range tasks {
				if tasks[i].ID == due.TaskID {
					tasks[i].RemindersSent = append(tasks[i].RemindersSent, due.Threshold.Tag)
				}
			}
			fired[due.TaskID] = append(fired[due.TaskID], due.Threshold.Tag)
		}
	}
	return fired
}

func TestPropertySingleFirePerThreshold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "tasks")
		statuses := []model.TaskStatus{model.TaskStatusTodo, model.TaskStatusWIP, model.TaskStatusDone, model.TaskStatusApproved, model.TaskStatusExecuted}
		tasks := make([]model.Task, n)
		for i := range tasks {
			mins := rapid.IntRange(-120, 3000).Draw(rt, fmt.Sprintf("dueMinutes_%d", i))
			tasks[i] = model.Task{
				ID:      fmt.Sprintf("t-%d", i),
				Title:   fmt.Sprintf("task %d", i),
				Status:  rapid.SampledFrom(statuses).Draw(rt, fmt.Sprintf("status_%d", i)),
				DueDate: base.Add(time.Duration(mins) * time.Minute),
			}
		}
		steps := rapid.SliceOfN(rapid.IntRange(0, 600), 1, 60).Draw(rt, "tickMinutes")
		ticks := make([]time.Duration, len(steps))
		for i, s := range steps {
			ticks[i] = time.Duration(s) * time.Minute
		}

		fired := simulate(tasks, base, ticks)
		for _, task := range tasks {
			tags := fired[task.ID]
			if task.Status == model.TaskStatusExecuted && len(tags) > 0 {
				rt.Fatalf("executed task %s fired %v", task.ID, tags)
			}
			seen := map[model.ReminderTag]int{}
			for _, tag := range tags {
				seen[tag]++
				if seen[tag] > 1 {
					rt.Fatalf("task %s fired %s twice: %v", task.ID, tag, tags)
				}
			}
			if len(tags) == 2 && (tags[0] != model.ReminderOneDay || tags[1] != model.ReminderTwoHours) {
				rt.Fatalf("task %s fired out of order: %v", task.ID, tags)
			}
		}
	})
}

func TestPropertyNinetyMinutesFiresBothInOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		task := model.Task{ID: "t-1", Title: "launch", Status: model.TaskStatusWIP, DueDate: base.Add(90 * time.Minute)}
		// any cadence below 90 minutes reaches a second tick before the deadline
		step := time.Duration(rapid.IntRange(1, 44).Draw(rt, "stepMinutes")) * time.Minute
		tasks := []model.Task{task}
		ticks := []time.Duration{0}
		for elapsed := time.Duration(0); elapsed+step < 90*time.Minute; elapsed += step {
			ticks = append(ticks, step)
		}
		fired := simulate(tasks, base, ticks)["t-1"]
		if len(fired) != 2 || fired[0] != model.ReminderOneDay || fired[1] != model.ReminderTwoHours {
			rt.Fatalf("expected [1d 2h], got %v", fired)
		}
	})
}
