package deadline

import (
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindow returns the calendar month containing anchor, in anchor's
// location.
func MonthWindow(anchor time.Time) Window {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())

	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

type MonthlyStats struct {
	TotalTasks       int `json:"total_tasks"`
	TotalProjects    int `json:"total_projects"`
	TotalCampaigns   int `json:"total_campaigns"`
	OverdueTasks     int `json:"overdue_tasks"`
	OverdueProjects  int `json:"overdue_projects"`
	OverdueCampaigns int `json:"overdue_campaigns"`
}

// Aggregate computes the period statistics over already-collected actionable
// sets. Totals are windowed; overdue counts deliberately ignore the window — an
// item late since a prior month is still late today. Projects are expected to
// be the open subset (ResolveOpen applied).
func Aggregate(w Window, now time.Time, tasks []models.Task, openProjects []models.Project, campaigns []models.Campaign) MonthlyStats {
	taskSet := taskItems(tasks)
	projectSet := projectItems(openProjects)
	campaignSet := campaignItems(campaigns)

	return MonthlyStats{
		TotalTasks:       countInWindow(taskSet, w),
		TotalProjects:    countInWindow(projectSet, w),
		TotalCampaigns:   countInWindow(campaignSet, w),
		OverdueTasks:     countOverdue(taskSet, now),
		OverdueProjects:  countOverdue(projectSet, now),
		OverdueCampaigns: countOverdue(campaignSet, now),
	}
}

func countInWindow(items []WorkItem, w Window) int {
	count := 0

	for _, item := range items {
		if w.Contains(item.DeadlineAt()) {
			count++
		}
	}

	return count
}

func countOverdue(items []WorkItem, now time.Time) int {
	count := 0

	for _, item := range items {
		if item.DeadlineAt().Before(now) {
			count++
		}
	}

	return count
}
