package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/reminder"
)

var now = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func TestDefaultFixturesAreValid(t *testing.T) {
	data := Default(now)

	require.Len(t, data.Workspaces, 3)
	require.Len(t, data.Clients, 3)
	require.Len(t, data.Projects, 4)
	require.Len(t, data.Meetings, 3)
	require.Len(t, data.Tasks, 5)

	for _, c := range data.Clients {
		require.NoError(t, c.Validate())
	}
	for _, p := range data.Projects {
		require.NoError(t, p.Validate())
	}
	for _, task := range data.Tasks {
		require.NoError(t, task.Validate())
		assert.Equal(t, now, task.CreatedAt)
		assert.Empty(t, task.RemindersSent)
	}

	assert.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), data.Meetings[0].Time)
	assert.Equal(t, now.Add(90*time.Minute), data.Tasks[0].DueDate)
}

func TestDefaultFixturesFireExpectedFirstReminders(t *testing.T) {
	due := reminder.Evaluate(Default(now).Tasks, now.Add(30*time.Second))

	got := map[string]model.ReminderTag{}
	for _, d := range due {
		got[d.TaskID] = d.Threshold.Tag
	}
	// t-1 is inside both windows and fires the day reminder first; t-4 is
	// executed; t-3 and t-5 are two days out.
	assert.Equal(t, map[string]model.ReminderTag{
		"t-1": model.ReminderOneDay,
		"t-2": model.ReminderOneDay,
	}, got)
}

func TestDefaultReturnsFreshSlices(t *testing.T) {
	a := Default(now)
	b := Default(now)
	a.Tasks[0].AssigneeIDs[0] = "changed"
	assert.Equal(t, "ws-1", b.Tasks[0].AssigneeIDs[0])
}

func TestParseWhen(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"", time.Time{}},
		{"now", now},
		{"+90m", now.Add(90 * time.Minute)},
		{"-1h", now.Add(-time.Hour)},
		{"+2d", now.AddDate(0, 0, 2)},
		{"2026-03-05T09:00:00Z", time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseWhen(tc.raw, now)
		require.NoError(t, err, tc.raw)
		assert.True(t, tc.want.Equal(got), "%q: got %v want %v", tc.raw, got, tc.want)
	}

	for _, bad := range []string{"tomorrow", "+xd", "+5 parsecs", "2026-13-01"} {
		got, err := ParseWhen(bad, now)
		require.ErrorIs(t, err, ErrBadTime, bad)
		assert.True(t, got.IsZero())
	}
}

const sample = `
workspaces:
  - id: ws-1
    name: Ops
clients:
  - id: c-1
    name: Acme
    retainership_amount: 900
    services: [Ads]
projects:
  - id: p-1
    client_id: c-1
    name: Launch
    progress: 10
meetings:
  - id: m-1
    title: Kickoff
    time: +1d
tasks:
  - id: t-1
    client_id: c-1
    project_id: p-1
    title: Banner
    category: social media
    priority: high
    status: wip
    assignee_ids: [ws-1]
    due: +90m
  - id: t-2
    title: Copy
    due: next tuesday
    reminders_sent: [1d]
`

func TestParseBuildsDatasetWithDefaultsAndWarnings(t *testing.T) {
	data, warnings, err := Parse([]byte(sample), now)
	require.NoError(t, err)

	require.Len(t, data.Clients, 1)
	assert.Equal(t, model.EngagementRetainer, data.Clients[0].EngagementType)
	assert.Equal(t, model.ProjectActive, data.Projects[0].Status)
	assert.Equal(t, now.AddDate(0, 0, 1), data.Meetings[0].Time)

	require.Len(t, data.Tasks, 2)
	t1 := data.Tasks[0]
	assert.Equal(t, model.CategorySocialMedia, t1.Category)
	assert.Equal(t, model.PriorityHigh, t1.Priority)
	assert.Equal(t, model.TaskStatusWIP, t1.Status)
	assert.Equal(t, now.Add(90*time.Minute), t1.DueDate)
	assert.Equal(t, now, t1.CreatedAt)

	t2 := data.Tasks[1]
	assert.Equal(t, model.CategoryDesign, t2.Category)
	assert.Equal(t, model.PriorityMedium, t2.Priority)
	assert.Equal(t, model.TaskStatusTodo, t2.Status)
	assert.True(t, t2.DueDate.IsZero())
	assert.True(t, t2.HasReminder(model.ReminderOneDay))

	require.Len(t, warnings, 1)
	assert.Equal(t, "task t-2", warnings[0].Record)
	assert.Equal(t, "due", warnings[0].Field)
	assert.ErrorIs(t, warnings[0].Err, ErrBadTime)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	raw := "tasks:\n  - {id: t-1, title: A}\n  - {id: t-1, title: B}\n"
	_, _, err := Parse([]byte(raw), now)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestParseRejectsInvalidEnums(t *testing.T) {
	_, _, err := Parse([]byte("tasks:\n  - {id: t-1, title: A, status: blocked}\n"), now)
	require.ErrorIs(t, err, model.ErrInvalidStatus)

	_, _, err = Parse([]byte("tasks:\n  - {id: t-1, title: A, reminders_sent: [3h]}\n"), now)
	require.ErrorIs(t, err, model.ErrInvalidReminderTag)

	_, _, err = Parse([]byte("projects:\n  - {id: p-1, client_id: c-1, progress: 140}\n"), now)
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	data, _, err := LoadFile(path, now)
	require.NoError(t, err)
	assert.Len(t, data.Tasks, 2)

	_, _, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), now)
	require.Error(t, err)
}
