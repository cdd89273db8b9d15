package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/catalog"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/monitoring"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/gin-gonic/gin"
)

// GetGames - GET /api/games?console=&page=&limit=&search=&region=&sort=
func (h *Handler) GetGames(c *gin.Context) {
	params := models.ListParams{
		Page:    queryInt(c, "page"),
		Limit:   queryInt(c, "limit"),
		Search:  c.Query("search"),
		Region:  c.Query("region"),
		Sort:    c.Query("sort"),
		Console: c.Query("console"),
	}
	userID := auth.UserID(c)

	start := time.Now()
	result, err := h.Catalog.ListGames(c.Request.Context(), params, userID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	resolved := catalog.Resolve(params)
	monitoring.CatalogListDuration.WithLabelValues(resolved.Console, resolved.Sort).Observe(time.Since(start).Seconds())

	h.setCollectionVersion(c, userID)
	c.JSON(http.StatusOK, result)
}

// setCollectionVersion exposes the viewer's ownership version so clients know when to refetch.
func (h *Handler) setCollectionVersion(c *gin.Context, userID string) {
	if h.Versions == nil {
		return
	}
	v, err := h.Versions.Version(c.Request.Context(), h.Catalog.ViewerID(userID))
	if err != nil {
		utils.Log.WithError(err).Debug("Collection version unavailable")
		return
	}
	c.Header("X-Collection-Version", strconv.FormatInt(v, 10))
}
