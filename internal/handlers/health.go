package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string        `json:"status"`
	Database string        `json:"database"`
	Catalog  CatalogHealth `json:"catalog"`
}

// CatalogHealth describes the loaded catalog snapshot
type CatalogHealth struct {
	Products int        `json:"products"`
	Source   string     `json:"source,omitempty"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

// HealthCheck handles the health check endpoint
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok"}

	if h.Catalog != nil {
		view := h.Catalog.Current()
		response.Catalog = CatalogHealth{Products: len(view.Products), Source: view.Source}
		if !view.LoadedAt.IsZero() {
			loaded := view.LoadedAt
			response.Catalog.LoadedAt = &loaded
		}
	}

	if h.DBStatus == nil {
		response.Database = "not configured"
		c.JSON(http.StatusOK, response)
		return
	}
	if err := h.DBStatus(c.Request.Context()); err != nil {
		response.Status = "degraded"
		response.Database = "disconnected"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	response.Database = "connected"
	c.JSON(http.StatusOK, response)
}
