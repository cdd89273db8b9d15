package handlers

import (
	"net/http"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/monitoring"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/gin-gonic/gin"
)

// ToggleOwnership - POST /api/ownership/toggle
func (h *Handler) ToggleOwnership(c *gin.Context) {
	var input models.ToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	platform := input.Console
	if platform == "" {
		platform = models.PlatformPS1
	}
	action := "add"
	if input.CurrentStatus {
		action = "remove"
	}

	owned, err := h.Ownership.Toggle(c.Request.Context(), input.GameID, input.CurrentStatus, platform, auth.UserID(c))
	if err != nil {
		monitoring.OwnershipToggles.WithLabelValues(platform, action, "error").Inc()
		apperr.Respond(c, err)
		return
	}
	monitoring.OwnershipToggles.WithLabelValues(platform, action, "ok").Inc()

	c.JSON(http.StatusOK, gin.H{
		"gameId":     input.GameID,
		"console":    platform,
		"owned":      owned,
		"revalidate": "/",
	})
}
