package store

import (
	"github.com/oklog/ulid/v2"
)

type ChangeKind string

const (
	ChangeTasks         ChangeKind = "tasks"
	ChangeNotifications ChangeKind = "notifications"
	ChangeToast         ChangeKind = "toast"
	ChangeSession       ChangeKind = "session"
)

type Change struct {
	Kind ChangeKind
}

// Subscribe returns a channel that receives a Change after every mutation.
// Delivery never blocks the store: when the buffer is full the change is
// dropped, so consumers should re-read state rather than count changes.
func (s *Store) Subscribe(bufSize int) (string, <-chan Change) {
	if bufSize <= 0 {
		bufSize = 1
	}
	id := ulid.Make().String()
	ch := make(chan Change, bufSize)
	s.subsMu.Lock()
	s.subs[id] = ch
	s.subsMu.Unlock()
	return id, ch
}

func (s *Store) Unsubscribe(id string) {
	s.subsMu.Lock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
	s.subsMu.Unlock()
}

func (s *Store) publish(kind ChangeKind) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- Change{Kind: kind}:
		default:
		}
	}
}
