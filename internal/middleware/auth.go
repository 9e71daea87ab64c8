package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/krishiseeds/catalog-service/internal/session"
)

const (
	// SessionCookie is the default admin session cookie name
	SessionCookie = "sid"
	// SessionHeader carries the token for non-browser clients
	SessionHeader = "X-Session-Token"

	sessionKey = "session"
)

// SessionGetter resolves session tokens
type SessionGetter interface {
	Get(token string) (session.Session, error)
}

// SessionToken extracts the token from the cookie, the header, or a bearer
// Authorization header, in that order
func SessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	if token := c.GetHeader(SessionHeader); token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// RequireSession rejects requests without a valid admin session
func RequireSession(store SessionGetter, cookieName string, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(SessionToken(c, cookieName))
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) && !errors.Is(err, session.ErrSessionExpired) {
				logger.Error().Err(err).Msg("Session lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by RequireSession
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
