package auth

import (
	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/gin-gonic/gin"
)

// RequireUser rejects anonymous requests. Writes always need a real identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			apperr.Respond(c, apperr.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		c.Next()
	}
}
