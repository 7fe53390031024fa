package model

import (
	"errors"
	"testing"
)

func TestReminderTagValidity(t *testing.T) {
	for _, tag := range []ReminderTag{ReminderOneDay, ReminderTwoHours} {
		if !tag.IsValid() {
			t.Fatalf("expected %q valid", tag)
		}
	}
	if ReminderTag("1w").IsValid() {
		t.Fatal("expected 1w invalid")
	}
}

func TestHasReminder(t *testing.T) {
	task := Task{RemindersSent: []ReminderTag{ReminderOneDay}}
	if !task.HasReminder(ReminderOneDay) || task.HasReminder(ReminderTwoHours) {
		t.Fatalf("unexpected reminder lookup for %+v", task.RemindersSent)
	}
}

func TestParseUserStatus(t *testing.T) {
	got, err := ParseUserStatus("vacation")
	if err != nil || got != UserOnVacation {
		t.Fatalf("unexpected status %q err=%v", got, err)
	}
	got, err = ParseUserStatus("On Vacation")
	if err != nil || got != UserOnVacation {
		t.Fatalf("unexpected status %q err=%v", got, err)
	}
	if _, err := ParseUserStatus("busy"); !errors.Is(err, ErrInvalidUserStatus) {
		t.Fatalf("expected ErrInvalidUserStatus, got %v", err)
	}
	if UserOnVacation.Next() != UserActive {
		t.Fatal("expected presence cycle to wrap to Active")
	}
}

func TestProjectValidateProgressRange(t *testing.T) {
	p := Project{ID: "p-1", ClientID: "c-1", Name: "Site", Status: ProjectActive, Progress: 120}
	if err := p.Validate(); err == nil {
		t.Fatal("expected progress range error")
	}
	p.Progress = 40
	p.Status = "Archived"
	if err := p.Validate(); !errors.Is(err, ErrInvalidProjectStatus) {
		t.Fatalf("expected ErrInvalidProjectStatus, got %v", err)
	}
}

func TestClientValidate(t *testing.T) {
	c := Client{ID: "c-1", Name: "AINU", EngagementType: EngagementRetainer}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid client, got %v", err)
	}
	c.EngagementType = "Hourly"
	if err := c.Validate(); !errors.Is(err, ErrInvalidEngagement) {
		t.Fatalf("expected ErrInvalidEngagement, got %v", err)
	}
}
