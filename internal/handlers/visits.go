package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krishiseeds/catalog-service/internal/middleware"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// VisitRequest is a client-reported page view
type VisitRequest struct {
	Path     string `json:"path" binding:"required,max=2048" jsonschema:"required"`
	Referrer string `json:"referrer" binding:"max=2048"`
}

// RecordVisit logs a storefront page view reported by the browser
// @Summary Record visit
// @Tags visits
// @Accept json
// @Produce json
// @Param request body VisitRequest true "Visit"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/visits [post]
func (h *Handler) RecordVisit(c *gin.Context) {
	var req VisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
		return
	}
	if !strings.HasPrefix(req.Path, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path must start with /"})
		return
	}

	recorded := false
	if h.Visits != nil {
		recorded = h.Visits.Enqueue(types.Visit{
			VisitorID: middleware.VisitorID(c),
			Path:      req.Path,
			Referrer:  req.Referrer,
			UserAgent: c.Request.UserAgent(),
			IP:        c.ClientIP(),
			CreatedAt: h.now().UTC(),
		})
	}
	c.JSON(http.StatusAccepted, gin.H{"recorded": recorded})
}
