package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Milestone statuses
const (
	MilestoneStatusCreated    = "created"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
)

// Campaign statuses
const (
	CampaignStatusDraft      = "draft"
	CampaignStatusInProgress = "in-progress"
	CampaignStatusReady      = "ready"
	CampaignStatusPublished  = "published"
	CampaignStatusArchived   = "archived"
)

// Notification types emitted by the sweep
const (
	NotificationTaskDueSoon      = "task_due_soon"
	NotificationTaskOverdue      = "task_overdue"
	NotificationProjectDeadline  = "project_deadline"
	NotificationDeadlineConflict = "deadline_conflict"
)

// Entity type labels on notification records
const (
	EntityTypeTask     = "task"
	EntityTypeProject  = "project"
	EntityTypeCampaign = "campaign"
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
