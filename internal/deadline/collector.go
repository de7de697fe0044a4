package deadline

import (
	"context"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
)

// Collector fetches the actionable work items for a user. The store already
// filters in its queries; the collector re-applies the same predicates so the
// semantics hold for any store implementation, not just the SQL one.
type Collector struct {
	store WorkItemStore
}

func NewCollector(store WorkItemStore) *Collector {
	return &Collector{store: store}
}

// TasksFor returns tasks with a due date, not yet completed, where userID is in
// the recipient set (legacy assignee or task_assignees relation).
func (c *Collector) TasksFor(ctx context.Context, userID uint) ([]models.Task, error) {
	tasks, err := c.store.TasksByAssignee(ctx, userID)

	if err != nil {
		return nil, err
	}

	var out []models.Task

	for _, t := range tasks {
		if taskActionable(t) && containsUser(TaskRecipients(t), userID) {
			out = append(out, t)
		}
	}

	return out, nil
}

// ProjectsFor returns projects with a deadline where userID is an assignee.
// Derived completion is not applied here; callers run ResolveOpen with the
// project milestones when they need the open subset.
func (c *Collector) ProjectsFor(ctx context.Context, userID uint) ([]models.Project, error) {
	projects, err := c.store.ProjectsByAssignee(ctx, userID)

	if err != nil {
		return nil, err
	}

	var out []models.Project

	for _, p := range projects {
		if projectTracked(p) && containsUser(ProjectRecipients(p), userID) {
			out = append(out, p)
		}
	}

	return out, nil
}

// CampaignsFor returns not-yet-launched campaigns owned by userID: start date
// set, not ongoing, status draft or in-progress.
func (c *Collector) CampaignsFor(ctx context.Context, userID uint) ([]models.Campaign, error) {
	campaigns, err := c.store.CampaignsByOwner(ctx, userID)

	if err != nil {
		return nil, err
	}

	var out []models.Campaign

	for _, cp := range campaigns {
		if campaignActionable(cp) && cp.UserID == userID {
			out = append(out, cp)
		}
	}

	return out, nil
}

func containsUser(users []uint, userID uint) bool {
	for _, u := range users {
		if u == userID {
			return true
		}
	}

	return false
}
