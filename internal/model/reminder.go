package model

import (
	"errors"
	"time"
)

var ErrInvalidReminderTag = errors.New("model: invalid reminder tag")

// ReminderTag names a lookahead window that fires at most once per task.
type ReminderTag string

const (
	ReminderOneDay   ReminderTag = "1d"
	ReminderTwoHours ReminderTag = "2h"
)

func (r ReminderTag) IsValid() bool {
	switch r {
	case ReminderOneDay, ReminderTwoHours:
		return true
	default:
		return false
	}
}

// JustNow is the display label every notification is created with.
const JustNow = "Just now"

type Notification struct {
	ID      string
	Title   string
	Message string
	Urgent  bool
	// Read is false at creation and no operation flips it; clearing removes
	// notifications instead.
	Read      bool
	Time      string
	CreatedAt time.Time
}

// NotificationPayload is what producers hand to the store.
type NotificationPayload struct {
	Title   string
	Message string
	Urgent  bool
}
