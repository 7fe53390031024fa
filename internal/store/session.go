package store

import (
	"fmt"

	"github.com/sandeepkv93/agencyd/internal/model"
)

// Login marks the session active for user. Presence is left as it was.
func (s *Store) Login(user string) {
	s.mu.Lock()
	s.session.LoggedIn = true
	s.session.User = user
	s.mu.Unlock()

	s.logger.Info("session started", "user", user)
	s.publish(ChangeSession)
}

// Logout ends the session and drops the toast together with its pending
// auto-clear. Tasks and notifications are kept.
func (s *Store) Logout() {
	s.mu.Lock()
	user := s.session.User
	s.session.LoggedIn = false
	s.session.User = ""
	s.hideToastLocked()
	s.mu.Unlock()

	s.logger.Info("session ended", "user", user)
	s.publish(ChangeSession)
}

func (s *Store) SetPresence(status model.UserStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidUserStatus, status)
	}
	s.mu.Lock()
	s.session.Presence = status
	s.mu.Unlock()

	s.logger.Info("presence changed", "presence", status)
	s.publish(ChangeSession)
	return nil
}
