package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// VisitorCookie identifies a returning browser
const VisitorCookie = "vid"

const visitorCookieMaxAge = 365 * 24 * 60 * 60

// VisitQueue accepts visits for asynchronous storage
type VisitQueue interface {
	Enqueue(v types.Visit) bool
}

// VisitorID returns the visitor cookie, issuing a new one when absent
func VisitorID(c *gin.Context) string {
	if id, err := c.Cookie(VisitorCookie); err == nil {
		if _, perr := uuid.Parse(id); perr == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(VisitorCookie, id, visitorCookieMaxAge, "/", "", false, true)
	return id
}

// VisitLogger records successful GET requests outside the skipped prefixes
// as storefront page views
func VisitLogger(queue VisitQueue, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || hasAnyPrefix(c.Request.URL.Path, skipPrefixes) {
			c.Next()
			return
		}

		visitorID := VisitorID(c)
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		queue.Enqueue(types.Visit{
			VisitorID: visitorID,
			Path:      c.Request.URL.Path,
			Referrer:  c.Request.Referer(),
			UserAgent: c.Request.UserAgent(),
			IP:        c.ClientIP(),
			CreatedAt: time.Now().UTC(),
		})
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
