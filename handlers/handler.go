package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/catalog"
	"github.com/cleitonzila/n64-checklist/middleware"
	"github.com/cleitonzila/n64-checklist/ownership"
	"github.com/gin-gonic/gin"
)

// VersionSource reports how many ownership changes a viewer has made.
type VersionSource interface {
	Version(ctx context.Context, userID string) (int64, error)
}

type Handler struct {
	Catalog   *catalog.Service
	Ownership *ownership.Service
	Auth      *auth.Authenticator
	Sessions  *auth.Sessions
	Versions  VersionSource

	Limiter          middleware.Limiter
	ToggleRateLimit  int
	ToggleRateWindow time.Duration
	SecureCookies    bool
}

// Register mounts the API on r. r must already run Sessions.Session().
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	api := r.Group("/api")
	{
		api.GET("/session", h.GetSession)
		api.GET("/games", h.GetGames)
		api.GET("/stats", h.GetStats)
		api.GET("/ps1-covers/:id", h.GetPS1Cover)
		api.GET("/n64-covers/:id", h.GetN64Cover)

		api.POST("/ownership/toggle",
			auth.RequireUser(),
			middleware.RateLimit(h.Limiter, "toggle", h.ToggleRateLimit, h.ToggleRateWindow),
			h.ToggleOwnership,
		)
	}
}

// queryInt reads a positive integer query value. Anything else yields 0 so defaults apply.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
