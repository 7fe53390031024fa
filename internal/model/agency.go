package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEngagement    = errors.New("model: invalid engagement type")
	ErrInvalidProjectStatus = errors.New("model: invalid project status")
)

type EngagementType string

const (
	EngagementRetainer EngagementType = "Retainer"
	EngagementOneTime  EngagementType = "One-time"
)

func (e EngagementType) IsValid() bool {
	switch e {
	case EngagementRetainer, EngagementOneTime:
		return true
	default:
		return false
	}
}

type Client struct {
	ID                 string
	Name               string
	RetainershipAmount int
	EngagementType     EngagementType
	Services           []string
	Description        string
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: client id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: client name is required")
	}
	if !c.EngagementType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEngagement, c.EngagementType)
	}
	return nil
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectPaused    ProjectStatus = "Paused"
	ProjectCompleted ProjectStatus = "Completed"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectActive, ProjectPaused, ProjectCompleted:
		return true
	default:
		return false
	}
}

type Project struct {
	ID       string
	ClientID string
	Name     string
	Status   ProjectStatus
	// Progress is a percentage in [0,100].
	Progress int
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.ClientID) == "" {
		return errors.New("model: project client_id is required")
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidProjectStatus, p.Status)
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("model: project progress out of range: %d", p.Progress)
	}
	return nil
}

// Workspace is a team member or team unit tasks can be assigned to.
type Workspace struct {
	ID     string
	Name   string
	Avatar string
}

type Meeting struct {
	ID           string
	Title        string
	Time         time.Time
	Duration     string
	Participants []string
	Link         string
}

// Dataset is the full set of records a store starts from.
type Dataset struct {
	Workspaces []Workspace
	Clients    []Client
	Projects   []Project
	Meetings   []Meeting
	Tasks      []Task
}
