package deadline

import (
	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
)

// Projects carry no status column, so completion is derived from milestones: a
// project is resolved-complete iff it has at least one milestone and every one
// of them is completed. Zero milestones means open — absence of evidence of
// completion is not completion.

// ResolveOpen returns the projects that are not resolved-complete. Both the
// statistics path and the notification rules go through here, so finished work
// never counts as due or overdue anywhere.
func ResolveOpen(projects []models.Project, milestones []models.Milestone) []models.Project {
	byProject := make(map[uint][]models.Milestone)

	for _, m := range milestones {
		byProject[m.ProjectID] = append(byProject[m.ProjectID], m)
	}

	var open []models.Project

	for _, p := range projects {
		if !resolvedComplete(byProject[p.ID]) {
			open = append(open, p)
		}
	}

	return open
}

func resolvedComplete(milestones []models.Milestone) bool {
	if len(milestones) == 0 {
		return false
	}

	for _, m := range milestones {
		if m.Status != types.MilestoneStatusCompleted {
			return false
		}
	}

	return true
}

func projectIDs(projects []models.Project) []uint {
	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}
