package deadline

import (
	"testing"
	"time"

	"github.com/pulsecrm-dev/pulsecrm/internal/models"
	"github.com/pulsecrm-dev/pulsecrm/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestResolveOpen(t *testing.T) {
	deadline := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		milestones []models.Milestone
		wantOpen   bool
	}{
		{
			name:       "zero milestones stays open",
			milestones: nil,
			wantOpen:   true,
		},
		{
			name: "all milestones completed resolves complete",
			milestones: []models.Milestone{
				newMilestone(1, types.MilestoneStatusCompleted),
				newMilestone(1, types.MilestoneStatusCompleted),
			},
			wantOpen: false,
		},
		{
			name: "one unfinished milestone stays open",
			milestones: []models.Milestone{
				newMilestone(1, types.MilestoneStatusCompleted),
				newMilestone(1, types.MilestoneStatusInProgress),
			},
			wantOpen: true,
		},
		{
			name: "single created milestone stays open",
			milestones: []models.Milestone{
				newMilestone(1, types.MilestoneStatusCreated),
			},
			wantOpen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := []models.Project{newProject(1, "Rebrand", deadline, 10)}

			open := ResolveOpen(projects, tt.milestones)

			if tt.wantOpen {
				assert.Len(t, open, 1)
			} else {
				assert.Empty(t, open)
			}
		})
	}
}

func TestResolveOpenIgnoresOtherProjectsMilestones(t *testing.T) {
	deadline := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	projects := []models.Project{
		newProject(1, "Rebrand", deadline, 10),
		newProject(2, "Launch", deadline, 10),
	}

	// Project 1 is finished, project 2 has no milestones at all.
	milestones := []models.Milestone{
		newMilestone(1, types.MilestoneStatusCompleted),
	}

	open := ResolveOpen(projects, milestones)

	assert.Len(t, open, 1)
	assert.Equal(t, uint(2), open[0].ID)
}
