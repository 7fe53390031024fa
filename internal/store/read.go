package store

import (
	"slices"

	"github.com/sandeepkv93/agencyd/internal/model"
)

// State is a consistent copy of everything the store holds.
type State struct {
	Tasks         []model.Task
	Notifications []model.Notification
	Toast         *model.Notification
	Session       model.Session
	Workspaces    []model.Workspace
	Clients       []model.Client
	Projects      []model.Project
	Meetings      []model.Meeting
}

func (st State) UnreadCount() int {
	return countUnread(st.Notifications)
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Tasks:         cloneTasks(s.tasks),
		Notifications: slices.Clone(s.notifications),
		Toast:         s.toastCopyLocked(),
		Session:       s.session,
		Workspaces:    slices.Clone(s.workspaces),
		Clients:       s.clientsLocked(),
		Projects:      slices.Clone(s.projects),
		Meetings:      s.meetingsLocked(),
	}
}

func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks)
}

func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return model.Task{}, false
}

func (s *Store) Notifications() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countUnread(s.notifications)
}

// Toast returns the live toast, if any.
func (s *Store) Toast() (model.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.toast == nil {
		return model.Notification{}, false
	}
	return *s.toast, true
}

func (s *Store) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) Workspaces() []model.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.workspaces)
}

func (s *Store) Clients() []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientsLocked()
}

func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.projects)
}

func (s *Store) Meetings() []model.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meetingsLocked()
}

func (s *Store) toastCopyLocked() *model.Notification {
	if s.toast == nil {
		return nil
	}
	t := *s.toast
	return &t
}

func (s *Store) clientsLocked() []model.Client {
	out := make([]model.Client, len(s.clients))
	for i, c := range s.clients {
		c.Services = slices.Clone(c.Services)
		out[i] = c
	}
	return out
}

func (s *Store) meetingsLocked() []model.Meeting {
	out := make([]model.Meeting, len(s.meetings))
	for i, m := range s.meetings {
		m.Participants = slices.Clone(m.Participants)
		out[i] = m
	}
	return out
}

func countUnread(ns []model.Notification) int {
	n := 0
	for _, item := range ns {
		if !item.Read {
			n++
		}
	}
	return n
}
