package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsecrm-dev/pulsecrm/internal/deadline"
	"github.com/pulsecrm-dev/pulsecrm/internal/utils"
)

type TaskSummary struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Priority string    `json:"priority"`
	Status   string    `json:"status"`
	DueDate  time.Time `json:"due_date"`
}

type ProjectSummary struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Deadline time.Time `json:"deadline"`
	Value    float64   `json:"value"`
}

type CampaignSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
}

type DeadlineViewResponse struct {
	Tasks     []TaskSummary         `json:"tasks"`
	Projects  []ProjectSummary      `json:"projects"`
	Campaigns []CampaignSummary     `json:"campaigns"`
	Stats     deadline.MonthlyStats `json:"monthly_stats"`
	Degraded  []string              `json:"degraded,omitempty"`
}

// GetDeadlines serves the calendar view: the user's actionable work items for
// the requested month plus period statistics. Failed entity types come back
// empty and listed under "degraded" instead of failing the whole request.
func GetDeadlines(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	monthAnchor, err := utils.ParseMonth(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view := viewer.UserDeadlineView(ctx.Request.Context(), userID, monthAnchor, time.Now())

	response := DeadlineViewResponse{
		Stats:    view.Stats,
		Degraded: view.Degraded,
	}

	for _, t := range view.Tasks {
		response.Tasks = append(response.Tasks, TaskSummary{
			ID:       t.ID,
			Title:    t.Title,
			Priority: t.Priority,
			Status:   t.Status,
			DueDate:  *t.DueDate,
		})
	}

	for _, p := range view.Projects {
		response.Projects = append(response.Projects, ProjectSummary{
			ID:       p.ID,
			Name:     p.Name,
			Deadline: *p.Deadline,
			Value:    p.Value,
		})
	}

	for _, c := range view.Campaigns {
		response.Campaigns = append(response.Campaigns, CampaignSummary{
			ID:        c.ID,
			Name:      c.Name,
			Status:    c.Status,
			StartDate: *c.StartDate,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// RunSweep triggers a sweep outside the schedule and returns its report. The
// engine's dedup makes this safe to call at any time.
func RunSweep(ctx *gin.Context) {
	report, err := engine.RunSweep(ctx.Request.Context(), time.Now())

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"report": report, "degraded": true})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"report": report})
}
