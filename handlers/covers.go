package handlers

import (
	"net/http"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/gin-gonic/gin"
)

const (
	PlaceholderCover = "/placeholder_cover.svg"
	coverCacheHeader = "public, max-age=31536000, immutable"
)

// GetPS1Cover - GET /api/ps1-covers/:id; missing covers redirect to the placeholder
func (h *Handler) GetPS1Cover(c *gin.Context) {
	data, err := h.Catalog.PS1Cover(c.Request.Context(), c.Param("id"))
	if apperr.Is(err, apperr.KindNotFound) {
		c.Redirect(http.StatusFound, PlaceholderCover)
		return
	}
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	writeCover(c, data)
}

// GetN64Cover - GET /api/n64-covers/:id
func (h *Handler) GetN64Cover(c *gin.Context) {
	data, err := h.Catalog.N64Cover(c.Request.Context(), c.Param("id"))
	if apperr.Is(err, apperr.KindNotFound) {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	writeCover(c, data)
}

func writeCover(c *gin.Context, data []byte) {
	c.Header("Cache-Control", coverCacheHeader)
	c.Data(http.StatusOK, "image/jpeg", data)
}
