package store

import (
	"context"
	"errors"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/deadline"
	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
	"gorm.io/gorm"
)

// Store implements deadline.WorkItemStore and deadline.NotificationLog on top
// of gorm. Terminal state is filtered in the queries themselves, so downstream
// code never sees completed tasks, launched campaigns, or items without a
// deadline-like date.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) TasksByAssignee(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task

	err := s.db.WithContext(ctx).
		Preload("Assignees").
		Joins("LEFT JOIN task_assignees ON task_assignees.task_id = tasks.id AND task_assignees.deleted_at IS NULL").
		Where("tasks.due_date IS NOT NULL").
		Where("tasks.status <> ?", types.TaskStatusCompleted).
		Where("tasks.assignee_id = ? OR task_assignees.user_id = ?", userID, userID).
		Distinct("tasks.*").
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *Store) ProjectsByAssignee(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.WithContext(ctx).
		Preload("Assignments").
		Joins("JOIN project_assignments ON project_assignments.project_id = projects.id AND project_assignments.deleted_at IS NULL").
		Where("projects.deadline IS NOT NULL").
		Where("project_assignments.user_id = ?", userID).
		Distinct("projects.*").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *Store) CampaignsByOwner(ctx context.Context, userID uint) ([]models.Campaign, error) {
	var campaigns []models.Campaign

	err := s.db.WithContext(ctx).
		Where("start_date IS NOT NULL").
		Where("is_ongoing = ?", false).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{types.CampaignStatusDraft, types.CampaignStatusInProgress}).
		Find(&campaigns).Error

	if err != nil {
		return nil, err
	}

	return campaigns, nil
}

func (s *Store) MilestonesByProjectIDs(ctx context.Context, projectIDs []uint) ([]models.Milestone, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var milestones []models.Milestone

	err := s.db.WithContext(ctx).
		Where("project_id IN ?", projectIDs).
		Find(&milestones).Error

	if err != nil {
		return nil, err
	}

	return milestones, nil
}

func (s *Store) ActionableTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task

	err := s.db.WithContext(ctx).
		Preload("Assignees").
		Where("due_date IS NOT NULL").
		Where("status <> ?", types.TaskStatusCompleted).
		Find(&tasks).Error

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *Store) ActionableProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.WithContext(ctx).
		Preload("Assignments").
		Where("deadline IS NOT NULL").
		Find(&projects).Error

	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *Store) Create(ctx context.Context, n *models.Notification) error {
	err := s.db.WithContext(ctx).Create(n).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return deadline.ErrDuplicateNotification
	}

	return err
}

func (s *Store) FindRecent(ctx context.Context, userID uint, notificationType, dedupKey string, since time.Time) ([]models.Notification, error) {
	var notifications []models.Notification

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("type = ?", notificationType).
		Where("dedup_key = ?", dedupKey).
		Where("created_at > ?", since).
		Find(&notifications).Error

	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// RecentForUser backs the notification list endpoint.
func (s *Store) RecentForUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error

	if err != nil {
		return nil, err
	}

	return notifications, nil
}
