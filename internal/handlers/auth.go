package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishiseeds/catalog-service/internal/auth"
	"github.com/krishiseeds/catalog-service/internal/middleware"
)

// LoginRequest holds admin credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" jsonschema:"required"`
	Password string `json:"password" binding:"required" jsonschema:"required"`
}

// SessionResponse describes the current admin session
type SessionResponse struct {
	Email     string    `json:"email" jsonschema:"required"`
	ExpiresAt time.Time `json:"expiresAt" jsonschema:"required"`
}

// Login checks admin credentials and starts a session
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	if err := h.Auth.Check(req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrNotConfigured) {
			h.logger.Error().Msg("Login attempted but no admin account is configured")
		} else {
			h.logger.Warn().Str("ip", c.ClientIP()).Msg("Failed admin login")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	sess, err := h.Sessions.Create(req.Email)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, sess.Token, int(h.Sessions.TTL().Seconds()), "/", "", h.Cookie.Secure, true)
	c.JSON(http.StatusOK, SessionResponse{Email: sess.Email, ExpiresAt: sess.ExpiresAt})
}

// Logout ends the current session
// @Summary Admin logout
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c, h.Cookie.Name); token != "" {
		if err := h.Sessions.Delete(token); err != nil {
			h.logger.Error().Err(err).Msg("Failed to delete session")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CurrentSession returns the logged-in admin
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/session [get]
func (h *Handler) CurrentSession(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Email: sess.Email, ExpiresAt: sess.ExpiresAt})
}
