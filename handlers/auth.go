package handlers

import (
	"net/http"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/monitoring"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Login - POST /login
func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user, err := h.Auth.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		utils.Log.WithFields(logrus.Fields{"username": input.Username, "ip": c.ClientIP()}).Warn("Login failed")
		apperr.Respond(c, err)
		return
	}

	token, err := h.Sessions.Issue(user.ID, user.Username)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(h.Sessions.TTL().Seconds()), "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "name": user.Username},
	})
}

// Logout - POST /logout
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession - GET /api/session
func (h *Handler) GetSession(c *gin.Context) {
	userID := auth.UserID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"id": userID, "name": auth.Username(c)}})
}
