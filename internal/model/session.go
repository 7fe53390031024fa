package model

import (
	"errors"
	"fmt"
)

var ErrInvalidUserStatus = errors.New("model: invalid user status")

type UserStatus string

const (
	UserActive     UserStatus = "Active"
	UserAway       UserStatus = "Away"
	UserOnVacation UserStatus = "On Vacation"
)

var UserStatuses = []UserStatus{UserActive, UserAway, UserOnVacation}

func (s UserStatus) IsValid() bool {
	switch s {
	case UserActive, UserAway, UserOnVacation:
		return true
	default:
		return false
	}
}

// Next cycles Active, Away, On Vacation.
func (s UserStatus) Next() UserStatus {
	switch s {
	case UserActive:
		return UserAway
	case UserAway:
		return UserOnVacation
	default:
		return UserActive
	}
}

func ParseUserStatus(raw string) (UserStatus, error) {
	switch normalizeEnum(raw) {
	case "active":
		return UserActive, nil
	case "away":
		return UserAway, nil
	case "onvacation", "vacation":
		return UserOnVacation, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUserStatus, raw)
	}
}

type Session struct {
	LoggedIn bool
	User     string
	Presence UserStatus
}
