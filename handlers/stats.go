package handlers

import (
	"net/http"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/monitoring"
	"github.com/gin-gonic/gin"
)

// GetStats - GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	userID := auth.UserID(c)
	stats, err := h.Catalog.Stats(c.Request.Context(), userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	monitoring.CatalogGames.WithLabelValues(models.PlatformPS1).Set(float64(stats.PS1.Total))
	monitoring.CatalogGames.WithLabelValues(models.PlatformN64).Set(float64(stats.N64.Total))

	h.setCollectionVersion(c, userID)
	c.JSON(http.StatusOK, stats)
}
