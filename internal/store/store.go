// Package store is the process-wide application state: tasks,
// notifications, the transient toast and the session. Every mutation runs
// under one write lock and swaps in freshly built collections; slices that
// have been handed out are never written again.
package store

import (
	"crypto/rand"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/sandeepkv93/agencyd/internal/clock"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/reminder"
)

const DefaultToastTTL = 5 * time.Second

type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithToastTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.toastTTL = d
		}
	}
}

// WithNotificationHook registers fn to receive every notification the store
// creates. Hooks run after the store lock is released.
func WithNotificationHook(fn func(model.Notification)) Option {
	return func(s *Store) {
		if fn != nil {
			s.hooks = append(s.hooks, fn)
		}
	}
}

type Store struct {
	mu       sync.RWMutex
	clock    clock.Clock
	logger   *slog.Logger
	toastTTL time.Duration
	hooks    []func(model.Notification)

	tasks         []model.Task
	notifications []model.Notification
	toast         *model.Notification
	toastGen      uint64
	toastTimer    clock.Timer
	session       model.Session

	workspaces []model.Workspace
	clients    []model.Client
	projects   []model.Project
	meetings   []model.Meeting

	entropy io.Reader
	lastMs  uint64

	subsMu sync.Mutex
	subs   map[string]chan Change
}

func New(data model.Dataset, opts ...Option) *Store {
	s := &Store{
		clock:    clock.Real{},
		logger:   slog.New(slog.DiscardHandler),
		toastTTL: DefaultToastTTL,
		session:  model.Session{Presence: model.UserActive},
		entropy:  ulid.Monotonic(rand.Reader, 0),
		subs:     make(map[string]chan Change),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = cloneTasks(data.Tasks)
	s.workspaces = slices.Clone(data.Workspaces)
	s.clients = make([]model.Client, len(data.Clients))
	for i, c := range data.Clients {
		c.Services = slices.Clone(c.Services)
		s.clients[i] = c
	}
	s.projects = slices.Clone(data.Projects)
	s.meetings = make([]model.Meeting, len(data.Meetings))
	for i, m := range data.Meetings {
		m.Participants = slices.Clone(m.Participants)
		s.meetings[i] = m
	}
	return s
}

// CreateTask builds a task from in, assigns a fresh id and creation time and
// puts it at the front of the collection. Empty enum fields fall back to the
// create form defaults.
func (s *Store) CreateTask(in model.TaskInput) model.Task {
	task := model.Task{
		ID:          "t-" + uuid.NewString(),
		ClientID:    in.ClientID,
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      in.Status,
		AssigneeIDs: slices.Clone(in.AssigneeIDs),
		DueDate:     in.DueDate,
	}
	if task.Category == "" {
		task.Category = model.CategoryDesign
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Status == "" {
		task.Status = model.TaskStatusTodo
	}

	s.mu.Lock()
	task.CreatedAt = s.clock.Now()
	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, task)
	next = append(next, s.tasks...)
	s.tasks = next
	s.mu.Unlock()

	s.logger.Info("task created", "task_id", task.ID, "title", task.Title, "status", task.Status)
	s.publish(ChangeTasks)
	return task.Clone()
}

// UpdateTaskStatus sets the status of the task with the given id. Any
// transition is allowed. It reports false and leaves the collection untouched
// when no task has that id.
func (s *Store) UpdateTaskStatus(id string, status model.TaskStatus) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		s.logger.Debug("status update for unknown task", "task_id", id)
		return false
	}
	next := slices.Clone(s.tasks)
	task := next[idx]
	from := task.Status
	task.Status = status
	next[idx] = task
	s.tasks = next
	s.mu.Unlock()

	s.logger.Info("task status updated", "task_id", id, "from", from, "to", status)
	s.publish(ChangeTasks)
	return true
}

// AddNotification records a new unread notification at the front of the
// collection and makes it the toast, restarting the auto-clear delay.
func (s *Store) AddNotification(p model.NotificationPayload) model.Notification {
	s.mu.Lock()
	n := s.newNotificationLocked(p, s.clock.Now())
	next := make([]model.Notification, 0, len(s.notifications)+1)
	next = append(next, n)
	next = append(next, s.notifications...)
	s.notifications = next
	s.showToastLocked(n)
	s.mu.Unlock()

	s.afterNotify([]model.Notification{n})
	return n
}

// ClearNotifications empties the notification collection. The toast stays.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	cleared := len(s.notifications)
	s.notifications = []model.Notification{}
	s.mu.Unlock()

	s.logger.Info("notifications cleared", "count", cleared)
	s.publish(ChangeNotifications)
}

// DismissToast clears the toast now. A pending auto-clear for it becomes a
// no-op.
func (s *Store) DismissToast() {
	s.mu.Lock()
	had := s.toast != nil
	s.hideToastLocked()
	s.mu.Unlock()

	if had {
		s.publish(ChangeToast)
	}
}

// CheckReminders evaluates every task against now and, in one step, records
// a notification for each due reminder and stamps its tag on the task. It
// returns the notifications created, in task order. Nothing happens while
// logged out.
func (s *Store) CheckReminders(now time.Time) []model.Notification {
	s.mu.Lock()
	if !s.session.LoggedIn {
		s.mu.Unlock()
		return nil
	}
	due := reminder.Evaluate(s.tasks, now)
	if len(due) == 0 {
		s.mu.Unlock()
		return nil
	}

	tasks := slices.Clone(s.tasks)
	index := make(map[string]int, len(tasks))
	for i := len(tasks) - 1; i >= 0; i-- {
		index[tasks[i].ID] = i
	}

	created := make([]model.Notification, 0, len(due))
	for _, d := range due {
		n := s.newNotificationLocked(d.Payload(), now)
		created = append(created, n)

		i := index[d.TaskID]
		task := tasks[i]
		task.RemindersSent = append(slices.Clip(task.RemindersSent), d.Threshold.Tag)
		tasks[i] = task
	}

	notifications := make([]model.Notification, 0, len(created)+len(s.notifications))
	for i := len(created) - 1; i >= 0; i-- {
		notifications = append(notifications, created[i])
	}
	notifications = append(notifications, s.notifications...)

	s.tasks = tasks
	s.notifications = notifications
	s.showToastLocked(created[len(created)-1])
	s.mu.Unlock()

	for _, d := range due {
		s.logger.Info("reminder fired", "task_id", d.TaskID, "threshold", d.Threshold.Tag, "urgent", d.Threshold.Urgent)
	}
	s.publish(ChangeTasks)
	s.afterNotify(created)
	return slices.Clone(created)
}

func (s *Store) newNotificationLocked(p model.NotificationPayload, at time.Time) model.Notification {
	return model.Notification{
		ID:        "n-" + s.nextIDLocked(at),
		Title:     p.Title,
		Message:   p.Message,
		Urgent:    p.Urgent,
		Read:      false,
		Time:      model.JustNow,
		CreatedAt: at,
	}
}

// nextIDLocked returns a ULID that sorts after every id handed out before,
// even if the clock stands still or steps back.
func (s *Store) nextIDLocked(at time.Time) string {
	ms := max(ulid.Timestamp(at), s.lastMs)
	id, err := ulid.New(ms, s.entropy)
	if err != nil {
		// monotonic entropy exhausted within this millisecond
		ms++
		id = ulid.MustNew(ms, s.entropy)
	}
	s.lastMs = ms
	return id.String()
}

func (s *Store) showToastLocked(n model.Notification) {
	s.hideToastLocked()
	toast := n
	s.toast = &toast
	gen := s.toastGen
	s.toastTimer = s.clock.AfterFunc(s.toastTTL, func() { s.expireToast(gen) })
}

func (s *Store) hideToastLocked() {
	if s.toastTimer != nil {
		s.toastTimer.Stop()
		s.toastTimer = nil
	}
	s.toastGen++
	s.toast = nil
}

func (s *Store) expireToast(gen uint64) {
	s.mu.Lock()
	if gen != s.toastGen || s.toast == nil {
		s.mu.Unlock()
		return
	}
	s.toast = nil
	s.toastTimer = nil
	s.mu.Unlock()

	s.publish(ChangeToast)
}

func (s *Store) afterNotify(created []model.Notification) {
	for _, n := range created {
		s.logger.Debug("notification added", "notification_id", n.ID, "title", n.Title, "urgent", n.Urgent)
		for _, hook := range s.hooks {
			hook(n)
		}
	}
	s.publish(ChangeNotifications)
	s.publish(ChangeToast)
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
