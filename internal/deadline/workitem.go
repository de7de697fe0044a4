package deadline

import (
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
)

// WorkItem is the shared view over the three deadline-bearing kinds. Items
// reaching this interface always carry a deadline; the collector drops the rest.
type WorkItem interface {
	ItemID() uint
	ItemTitle() string
	DeadlineAt() time.Time
	Recipients() []uint
}

type taskItem struct{ t models.Task }

func (i taskItem) ItemID() uint          { return i.t.ID }
func (i taskItem) ItemTitle() string     { return i.t.Title }
func (i taskItem) DeadlineAt() time.Time { return *i.t.DueDate }
func (i taskItem) Recipients() []uint    { return TaskRecipients(i.t) }

type projectItem struct{ p models.Project }

func (i projectItem) ItemID() uint          { return i.p.ID }
func (i projectItem) ItemTitle() string     { return i.p.Name }
func (i projectItem) DeadlineAt() time.Time { return *i.p.Deadline }
func (i projectItem) Recipients() []uint    { return ProjectRecipients(i.p) }

type campaignItem struct{ c models.Campaign }

func (i campaignItem) ItemID() uint          { return i.c.ID }
func (i campaignItem) ItemTitle() string     { return i.c.Name }
func (i campaignItem) DeadlineAt() time.Time { return *i.c.StartDate }
func (i campaignItem) Recipients() []uint    { return []uint{i.c.UserID} }

// TaskRecipients unions the legacy single-assignee column with the
// task_assignees relation. A user present in both appears once.
func TaskRecipients(t models.Task) []uint {
	var recipients []uint
	seen := make(map[uint]bool)

	if t.AssigneeID != nil && !seen[*t.AssigneeID] {
		seen[*t.AssigneeID] = true
		recipients = append(recipients, *t.AssigneeID)
	}

	for _, a := range t.Assignees {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			recipients = append(recipients, a.UserID)
		}
	}

	return recipients
}

func ProjectRecipients(p models.Project) []uint {
	var recipients []uint
	seen := make(map[uint]bool)

	for _, a := range p.Assignments {
		if !seen[a.UserID] {
			seen[a.UserID] = true
			recipients = append(recipients, a.UserID)
		}
	}

	return recipients
}

func taskItems(tasks []models.Task) []WorkItem {
	items := make([]WorkItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{t})
	}
	return items
}

func projectItems(projects []models.Project) []WorkItem {
	items := make([]WorkItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, projectItem{p})
	}
	return items
}

func campaignItems(campaigns []models.Campaign) []WorkItem {
	items := make([]WorkItem, 0, len(campaigns))
	for _, c := range campaigns {
		items = append(items, campaignItem{c})
	}
	return items
}

func taskActionable(t models.Task) bool {
	return t.DueDate != nil && t.Status != types.TaskStatusCompleted
}

func projectTracked(p models.Project) bool {
	return p.Deadline != nil
}

func campaignActionable(c models.Campaign) bool {
	if c.StartDate == nil || c.IsOngoing {
		return false
	}

	return c.Status == types.CampaignStatusDraft || c.Status == types.CampaignStatusInProgress
}
