package seed

import (
	"time"

	"github.com/sandeepkv93/agencyd/internal/model"
)

// Default returns the built-in agency fixtures with times relative to now.
func Default(now time.Time) model.Dataset {
	hour := time.Hour
	today10 := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())

	return model.Dataset{
		Workspaces: []model.Workspace{
			{ID: "ws-1", Name: "Sraddha's Workspace", Avatar: "https://picsum.photos/seed/sraddha/100/100"},
			{ID: "ws-3", Name: "Design Team", Avatar: "https://picsum.photos/seed/design/100/100"},
			{ID: "ws-4", Name: "Video Editing Team", Avatar: "https://picsum.photos/seed/video/100/100"},
		},
		Clients: []model.Client{
			{
				ID:                 "c-1",
				Name:               "AINU",
				RetainershipAmount: 5000,
				EngagementType:     model.EngagementRetainer,
				Services:           []string{"Social Media", "Content", "Ads"},
				Description:        "Leading Urology Institute in India.",
			},
			{
				ID:                 "c-2",
				Name:               "Lotus Hospitals",
				RetainershipAmount: 7500,
				EngagementType:     model.EngagementRetainer,
				Services:           []string{"Social Media", "Design", "Operations"},
				Description:        "Specialized healthcare for women and children.",
			},
			{
				ID:                 "c-3",
				Name:               "SLG Hospitals",
				RetainershipAmount: 12000,
				EngagementType:     model.EngagementRetainer,
				Services:           []string{"Website", "SEO", "Ads", "Design"},
				Description:        "Multi-specialty tertiary care hospital.",
			},
		},
		Projects: []model.Project{
			{ID: "p-1", ClientID: "c-1", Name: "Social Media Campaign Q4", Status: model.ProjectActive, Progress: 65},
			{ID: "p-2", ClientID: "c-1", Name: "Annual Report Design", Status: model.ProjectActive, Progress: 20},
			{ID: "p-3", ClientID: "c-2", Name: "New Website Launch", Status: model.ProjectActive, Progress: 45},
			{ID: "p-4", ClientID: "c-3", Name: "Google Ads Blitz", Status: model.ProjectActive, Progress: 80},
		},
		Meetings: []model.Meeting{
			{ID: "m-1", Title: "Weekly Sync: AINU Strategy", Time: today10, Duration: "45m", Participants: []string{"Sraddha", "Design Team"}},
			{ID: "m-2", Title: "Client Review: SLG Hospitals", Time: now.AddDate(0, 0, 1), Duration: "1h", Participants: []string{"Sraddha", "Video Editing Team"}},
			{ID: "m-3", Title: "Content Planning: Lotus Hospitals", Time: now.AddDate(0, 0, 2), Duration: "30m", Participants: []string{"Sraddha"}},
		},
		Tasks: []model.Task{
			{
				ID:          "t-1",
				ClientID:    "c-1",
				ProjectID:   "p-1",
				Title:       "Instagram Post Design - Doctor Profiles",
				Description: "Create 5 post designs featuring the leading urologists.",
				Category:    model.CategoryDesign,
				Priority:    model.PriorityHigh,
				Status:      model.TaskStatusWIP,
				AssigneeIDs: []string{"ws-1", "ws-3"},
				DueDate:     now.Add(90 * time.Minute),
				CreatedAt:   now,
			},
			{
				ID:          "t-2",
				ClientID:    "c-2",
				ProjectID:   "p-3",
				Title:       "Home Page Wireframing",
				Description: "Review the layout for the new maternity section.",
				Category:    model.CategoryWebsite,
				Priority:    model.PriorityUrgent,
				Status:      model.TaskStatusTodo,
				AssigneeIDs: []string{"ws-3"},
				DueDate:     now.Add(20 * hour),
				CreatedAt:   now,
			},
			{
				ID:          "t-3",
				ClientID:    "c-3",
				ProjectID:   "p-4",
				Title:       "Ad Copy Revision",
				Description: "Polish the headlines for SLG brand awareness campaign.",
				Category:    model.CategoryContent,
				Priority:    model.PriorityMedium,
				Status:      model.TaskStatusDone,
				AssigneeIDs: []string{"ws-1"},
				DueDate:     now.Add(48 * hour),
				CreatedAt:   now,
			},
			{
				ID:          "t-4",
				ClientID:    "c-1",
				ProjectID:   "p-1",
				Title:       "Monthly Analytics Report",
				Description: "Compile data from Meta Ads Manager.",
				Category:    model.CategoryAds,
				Priority:    model.PriorityLow,
				Status:      model.TaskStatusExecuted,
				AssigneeIDs: []string{"ws-1"},
				DueDate:     now,
				CreatedAt:   now,
			},
			{
				ID:          "t-5",
				ClientID:    "c-2",
				ProjectID:   "p-3",
				Title:       "Video Ad Splicing",
				Description: "Edit the promotional video for the maternity wing.",
				Category:    model.CategoryOperations,
				Priority:    model.PriorityMedium,
				Status:      model.TaskStatusTodo,
				AssigneeIDs: []string{"ws-4"},
				DueDate:     now.Add(48 * hour),
				CreatedAt:   now,
			},
		},
	}
}
