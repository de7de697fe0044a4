package deadline

import (
	"context"
	"log"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
)

// DeadlineView is what the calendar screen renders: the user's actionable
// items plus period statistics. Degraded lists the entity types whose fetch
// failed; partial data beats no data.
type DeadlineView struct {
	Tasks     []models.Task
	Projects  []models.Project // open subset only
	Campaigns []models.Campaign
	Stats     MonthlyStats
	Degraded  []string
}

type Viewer struct {
	collector *Collector
	store     WorkItemStore
}

func NewViewer(store WorkItemStore) *Viewer {
	return &Viewer{
		collector: NewCollector(store),
		store:     store,
	}
}

// UserDeadlineView assembles the view for the month containing monthAnchor.
// Everything is recomputed from live data on every call; nothing is cached.
func (v *Viewer) UserDeadlineView(ctx context.Context, userID uint, monthAnchor, now time.Time) DeadlineView {
	var view DeadlineView

	tasks, err := v.collector.TasksFor(ctx, userID)

	if err != nil {
		log.Printf("Deadline view: failed to load tasks for user %d: %v", userID, err)
		view.Degraded = append(view.Degraded, "tasks")
	} else {
		view.Tasks = tasks
	}

	projects, err := v.collector.ProjectsFor(ctx, userID)

	if err != nil {
		log.Printf("Deadline view: failed to load projects for user %d: %v", userID, err)
		view.Degraded = append(view.Degraded, "projects")
	} else if len(projects) > 0 {
		milestones, err := v.store.MilestonesByProjectIDs(ctx, projectIDs(projects))

		if err != nil {
			// Without milestones, derived completion is unknowable; degrade the
			// whole type rather than show finished projects as open.
			log.Printf("Deadline view: failed to load milestones for user %d: %v", userID, err)
			view.Degraded = append(view.Degraded, "projects")
		} else {
			view.Projects = ResolveOpen(projects, milestones)
		}
	}

	campaigns, err := v.collector.CampaignsFor(ctx, userID)

	if err != nil {
		log.Printf("Deadline view: failed to load campaigns for user %d: %v", userID, err)
		view.Degraded = append(view.Degraded, "campaigns")
	} else {
		view.Campaigns = campaigns
	}

	view.Stats = Aggregate(MonthWindow(monthAnchor), now, view.Tasks, view.Projects, view.Campaigns)

	return view
}
