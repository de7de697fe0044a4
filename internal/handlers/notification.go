package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsecrm-dev/pulsecrm/internal/utils"
	"gorm.io/datatypes"
)

type NotificationSummary struct {
	ID         uint           `json:"id"`
	Type       string         `json:"type"`
	EntityType string         `json:"entity_type,omitempty"`
	EntityID   *uint          `json:"entity_id,omitempty"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Meta       datatypes.JSON `json:"meta,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := crm.RecentForUser(ctx.Request.Context(), userID, 50)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	var response []NotificationSummary

	for _, n := range notifications {
		response = append(response, NotificationSummary{
			ID:         n.ID,
			Type:       n.Type,
			EntityType: n.EntityType,
			EntityID:   n.EntityID,
			Title:      n.Title,
			Message:    n.Message,
			Meta:       n.Meta,
			CreatedAt:  n.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
