package deadline

import (
	"context"
	"errors"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
)

// ErrDuplicateNotification reports that the dedup index already holds a row for
// the same (user, type, key, bucket). The engine treats it as "already
// notified", not as a failure.
var ErrDuplicateNotification = errors.New("notification already exists for dedup key")

// WorkItemStore is the read-only view of the CRM data the engine consumes.
// Implementations must pre-filter terminal state: completed tasks, ongoing or
// closed campaigns, and items without a deadline-like date never come back.
type WorkItemStore interface {
	TasksByAssignee(ctx context.Context, userID uint) ([]models.Task, error)
	ProjectsByAssignee(ctx context.Context, userID uint) ([]models.Project, error)
	CampaignsByOwner(ctx context.Context, userID uint) ([]models.Campaign, error)
	MilestonesByProjectIDs(ctx context.Context, projectIDs []uint) ([]models.Milestone, error)

	// Sweep-wide snapshots across all users, same filters as the per-user reads.
	ActionableTasks(ctx context.Context) ([]models.Task, error)
	ActionableProjects(ctx context.Context) ([]models.Project, error)
}

// NotificationLog is the append-only notification store. Create must return
// ErrDuplicateNotification when the storage-level dedup constraint rejects the
// row.
type NotificationLog interface {
	Create(ctx context.Context, n *models.Notification) error
	FindRecent(ctx context.Context, userID uint, notificationType, dedupKey string, since time.Time) ([]models.Notification, error)
}
