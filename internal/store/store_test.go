package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/model"
)

var start = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, tasks ...model.Task) (*Store, *clock.Fake) {
	t.Helper()
	c := clock.NewFake(start)
	s := New(model.Dataset{Tasks: tasks}, WithClock(c))
	return s, c
}

func seededTask(id string, due time.Duration, status model.TaskStatus) model.Task {
	return model.Task{
		ID:        id,
		Title:     "Task " + id,
		Category:  model.CategoryDesign,
		Priority:  model.PriorityMedium,
		Status:    status,
		DueDate:   start.Add(due),
		CreatedAt: start.Add(-time.Hour),
	}
}

func TestCreateTaskPrependsAndStampsFields(t *testing.T) {
	s, c := newTestStore(t, seededTask("t-seed", 48*time.Hour, model.TaskStatusTodo))

	t1 := s.CreateTask(model.TaskInput{Title: "Brief", ClientID: "c-1", ProjectID: "p-1"})
	c.Advance(time.Second)
	t2 := s.CreateTask(model.TaskInput{Title: "Storyboard", Priority: model.PriorityUrgent, AssigneeIDs: []string{"ws-1"}})

	tasks := s.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, t2.ID, tasks[0].ID)
	assert.Equal(t, t1.ID, tasks[1].ID)
	assert.Equal(t, "t-seed", tasks[2].ID)

	assert.NotEqual(t, t1.ID, t2.ID)
	assert.Regexp(t, `^t-[0-9a-f-]{36}$`, t1.ID)
	assert.Equal(t, start, t1.CreatedAt)
	assert.Equal(t, start.Add(time.Second), t2.CreatedAt)
	assert.Empty(t, t1.RemindersSent)
	assert.Equal(t, model.TaskStatusTodo, t1.Status)
	assert.Equal(t, model.CategoryDesign, t1.Category)
	assert.Equal(t, model.PriorityUrgent, t2.Priority)
	assert.Equal(t, []string{"ws-1"}, t2.AssigneeIDs)
}

func TestUpdateTaskStatusAllowsAnyTransition(t *testing.T) {
	s, _ := newTestStore(t, seededTask("t-1", 48*time.Hour, model.TaskStatusExecuted))

	require.True(t, s.UpdateTaskStatus("t-1", model.TaskStatusTodo))
	got, ok := s.Task("t-1")
	require.True(t, ok)
	assert.Equal(t, model.TaskStatusTodo, got.Status)

	require.True(t, s.UpdateTaskStatus("t-1", model.TaskStatusApproved))
	got, _ = s.Task("t-1")
	assert.Equal(t, model.TaskStatusApproved, got.Status)
}

func TestUpdateTaskStatusUnknownIDLeavesCollectionUntouched(t *testing.T) {
	s, _ := newTestStore(t,
		seededTask("t-1", 48*time.Hour, model.TaskStatusWIP),
		seededTask("t-2", 20*time.Hour, model.TaskStatusTodo),
	)
	before := s.Tasks()
	backing := &s.tasks[0]

	assert.False(t, s.UpdateTaskStatus("nonexistent-id", model.TaskStatusDone))
	assert.Equal(t, before, s.Tasks())
	assert.Same(t, backing, &s.tasks[0])
}

func TestMutationsDoNotRewritePublishedSlices(t *testing.T) {
	s, _ := newTestStore(t, seededTask("t-1", 48*time.Hour, model.TaskStatusWIP))
	s.mu.RLock()
	published := s.tasks
	s.mu.RUnlock()

	s.UpdateTaskStatus("t-1", model.TaskStatusDone)
	s.CreateTask(model.TaskInput{Title: "New"})

	assert.Equal(t, model.TaskStatusWIP, published[0].Status)
	assert.Len(t, published, 1)
}

func TestAddNotificationContract(t *testing.T) {
	s, _ := newTestStore(t)

	a := s.AddNotification(model.NotificationPayload{Title: "A", Message: "first"})
	b := s.AddNotification(model.NotificationPayload{Title: "B", Message: "second", Urgent: true})

	assert.False(t, a.Read)
	assert.Equal(t, model.JustNow, a.Time)
	assert.True(t, b.Urgent)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID, b.ID, "ids sort in creation order")

	list := s.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
	assert.Equal(t, 2, s.UnreadCount())
}

func TestToastReplaceSemantics(t *testing.T) {
	s, c := newTestStore(t)

	a := s.AddNotification(model.NotificationPayload{Title: "A"})
	c.Advance(3 * time.Second)
	b := s.AddNotification(model.NotificationPayload{Title: "B"})

	toast, ok := s.Toast()
	require.True(t, ok)
	assert.Equal(t, b.ID, toast.ID)
	assert.Equal(t, 1, c.PendingTimers(), "the earlier auto-clear is cancelled")

	// A's original deadline passes; B stays up because its delay restarted.
	c.Advance(3 * time.Second)
	toast, ok = s.Toast()
	require.True(t, ok)
	assert.Equal(t, b.ID, toast.ID)

	c.Advance(2 * time.Second)
	_, ok = s.Toast()
	assert.False(t, ok)

	ids := []string{}
	for _, n := range s.Notifications() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{b.ID, a.ID}, ids)
}

func TestToastAutoClearsAfterTTL(t *testing.T) {
	s, c := newTestStore(t)
	s.AddNotification(model.NotificationPayload{Title: "A"})

	c.Advance(4999 * time.Millisecond)
	_, ok := s.Toast()
	assert.True(t, ok)

	c.Advance(time.Millisecond)
	_, ok = s.Toast()
	assert.False(t, ok)
}

func TestDismissToastMakesPendingTimerInert(t *testing.T) {
	s, c := newTestStore(t)
	s.AddNotification(model.NotificationPayload{Title: "A"})
	s.DismissToast()

	_, ok := s.Toast()
	assert.False(t, ok)
	assert.Equal(t, 0, c.PendingTimers())

	s.mu.Lock()
	stale := s.toastGen - 1
	s.mu.Unlock()
	s.expireToast(stale)

	b := s.AddNotification(model.NotificationPayload{Title: "B"})
	s.expireToast(stale)
	toast, ok := s.Toast()
	require.True(t, ok, "a stale timer must not clear a newer toast")
	assert.Equal(t, b.ID, toast.ID)

	s.DismissToast()
	s.DismissToast()
}

func TestClearNotificationsKeepsToast(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.AddNotification(model.NotificationPayload{Title: "A"})
	s.ClearNotifications()

	assert.Empty(t, s.Notifications())
	toast, ok := s.Toast()
	require.True(t, ok)
	assert.Equal(t, a.ID, toast.ID)

	b := s.AddNotification(model.NotificationPayload{Title: "B"})
	assert.False(t, b.Read)
	assert.Greater(t, b.ID, a.ID)
	list := s.Notifications()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
	toast, _ = s.Toast()
	assert.Equal(t, b.ID, toast.ID)
}

func TestSessionLifecycle(t *testing.T) {
	s, c := newTestStore(t)
	assert.Equal(t, model.Session{Presence: model.UserActive}, s.Session())

	s.Login("sraddha@agency.test")
	require.NoError(t, s.SetPresence(model.UserAway))
	s.AddNotification(model.NotificationPayload{Title: "A"})

	s.Logout()
	sess := s.Session()
	assert.False(t, sess.LoggedIn)
	assert.Empty(t, sess.User)
	assert.Equal(t, model.UserAway, sess.Presence, "presence survives logout")
	_, ok := s.Toast()
	assert.False(t, ok)
	assert.Len(t, s.Notifications(), 1, "notifications survive logout")
	assert.Equal(t, 0, c.PendingTimers())

	c.Advance(10 * time.Second)
	assert.Error(t, s.SetPresence("Busy"))
}

func TestCheckRemindersScenario(t *testing.T) {
	s, c := newTestStore(t, seededTask("t-1", 90*time.Minute, model.TaskStatusWIP))
	s.Login("ops")

	first := s.CheckReminders(c.Now())
	require.Len(t, first, 1)
	assert.Equal(t, "Deadline Approaching (1 Day)", first[0].Title)
	assert.False(t, first[0].Read)
	assert.False(t, first[0].Urgent)
	task, _ := s.Task("t-1")
	assert.Equal(t, []model.ReminderTag{model.ReminderOneDay}, task.RemindersSent)

	c.Advance(30 * time.Second)
	second := s.CheckReminders(c.Now())
	require.Len(t, second, 1)
	assert.Equal(t, "Urgent Deadline (2 Hours)", second[0].Title)
	assert.True(t, second[0].Urgent)
	task, _ = s.Task("t-1")
	assert.Equal(t, []model.ReminderTag{model.ReminderOneDay, model.ReminderTwoHours}, task.RemindersSent)

	for i := 0; i < 5; i++ {
		c.Advance(30 * time.Second)
		assert.Empty(t, s.CheckReminders(c.Now()))
	}
	assert.Len(t, s.Notifications(), 2)
}

func TestCheckRemindersBatchOrderAndToast(t *testing.T) {
	s, c := newTestStore(t,
		seededTask("t-a", 20*time.Hour, model.TaskStatusTodo),
		seededTask("t-b", 25*time.Hour, model.TaskStatusTodo),
		seededTask("t-c", time.Hour, model.TaskStatusExecuted),
		seededTask("t-d", -time.Hour, model.TaskStatusWIP),
		seededTask("t-e", 10*time.Hour, model.TaskStatusDone),
	)
	s.Login("ops")

	created := s.CheckReminders(c.Now())
	require.Len(t, created, 2)
	assert.Equal(t, `Task "Task t-a" is due in 24 hours.`, created[0].Message)
	assert.Equal(t, `Task "Task t-e" is due in 24 hours.`, created[1].Message)

	list := s.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, created[1].ID, list[0].ID, "collection is most-recent-first")
	toast, ok := s.Toast()
	require.True(t, ok)
	assert.Equal(t, created[1].ID, toast.ID)

	for _, id := range []string{"t-b", "t-c", "t-d"} {
		task, _ := s.Task(id)
		assert.Empty(t, task.RemindersSent, id)
	}
}

func TestCheckRemindersInertWhileLoggedOut(t *testing.T) {
	s, c := newTestStore(t, seededTask("t-1", time.Hour, model.TaskStatusWIP))
	assert.Nil(t, s.CheckReminders(c.Now()))
	task, _ := s.Task("t-1")
	assert.Empty(t, task.RemindersSent)
}

func TestReadersNeverSeeHalfAppliedTick(t *testing.T) {
	tasks := make([]model.Task, 0, 50)
	for i := 0; i < 50; i++ {
		tasks = append(tasks, seededTask(string(rune('A'+i%26))+string(rune('a'+i/26)), 90*time.Minute, model.TaskStatusWIP))
	}
	s, c := newTestStore(t, tasks...)
	s.Login("ops")

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			st := s.Snapshot()
			sent := 0
			for _, task := range st.Tasks {
				sent += len(task.RemindersSent)
			}
			if sent != len(st.Notifications) {
				t.Errorf("snapshot saw %d tags for %d notifications", sent, len(st.Notifications))
				return
			}
		}
	}()

	s.CheckReminders(c.Now())
	c.Advance(30 * time.Second)
	s.CheckReminders(c.Now())
	close(stop)
	wg.Wait()

	assert.Len(t, s.Notifications(), 100)
}

func TestNotificationHookAndSubscribe(t *testing.T) {
	var hooked []string
	c := clock.NewFake(start)
	s := New(model.Dataset{}, WithClock(c), WithNotificationHook(func(n model.Notification) {
		hooked = append(hooked, n.Title)
	}))

	id, ch := s.Subscribe(8)
	s.AddNotification(model.NotificationPayload{Title: "A"})
	assert.Equal(t, []string{"A"}, hooked)

	kinds := map[ChangeKind]bool{}
	for len(ch) > 0 {
		kinds[(<-ch).Kind] = true
	}
	assert.True(t, kinds[ChangeNotifications])
	assert.True(t, kinds[ChangeToast])

	s.Unsubscribe(id)
	_, open := <-ch
	assert.False(t, open)
	s.ClearNotifications()
}

func TestSnapshotIsDetached(t *testing.T) {
	task := seededTask("t-1", time.Hour, model.TaskStatusWIP)
	task.AssigneeIDs = []string{"ws-1"}
	s := New(model.Dataset{
		Tasks:   []model.Task{task},
		Clients: []model.Client{{ID: "c-1", Name: "AINU", Services: []string{"Ads"}}},
	})

	st := s.Snapshot()
	st.Tasks[0].AssigneeIDs[0] = "ws-9"
	st.Clients[0].Services[0] = "Print"

	again := s.Snapshot()
	assert.Equal(t, "ws-1", again.Tasks[0].AssigneeIDs[0])
	assert.Equal(t, "Ads", again.Clients[0].Services[0])
}
