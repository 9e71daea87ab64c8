package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krishiseeds/catalog-service/internal/search"
)

// SearchRequest represents query parameters for site-wide search
type SearchRequest struct {
	Query       string   `form:"q" json:"q"`
	Types       []string `form:"type" json:"type" jsonschema:"enum=product,enum=article,enum=page"`
	Sort        string   `form:"sort" json:"sort" jsonschema:"enum=relevance,enum=title,enum=date"`
	Page        int      `form:"page" json:"page" binding:"omitempty,min=1" jsonschema:"minimum=1"`
	PerPage     int      `form:"perPage" json:"perPage" binding:"omitempty,min=1,max=50" jsonschema:"minimum=1,maximum=50"`
	MatchesOnly string   `form:"matchesOnly" json:"matchesOnly"`
}

// Search runs the site-wide search over products, articles and pages
// @Summary Site search
// @Description Scores titles (x2) and descriptions (x1); zero-score items are kept unless matchesOnly is set
// @Tags search
// @Produce json
// @Param q query string false "Search text"
// @Param type query []string false "Item types" Enums(product, article, page)
// @Param sort query string false "Result order" Enums(relevance, title, date)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param perPage query int false "Results per page" default(10) minimum(1) maximum(50)
// @Param matchesOnly query bool false "Drop items that do not match"
// @Success 200 {object} search.Result
// @Failure 400 {object} map[string]string "Bad request"
// @Router /api/search [get]
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	matchesOnly, _ := strconv.ParseBool(req.MatchesOnly)

	q := search.Query{
		Text:        req.Query,
		Types:       search.ParseTypes(req.Types),
		Sort:        search.SortMode(req.Sort),
		Page:        req.Page,
		PerPage:     req.PerPage,
		MatchesOnly: matchesOnly,
	}

	result := search.Search(h.searchItems(), q)
	h.Metrics.RecordSearch(result.Matches)
	c.JSON(http.StatusOK, result)
}

// searchItems is the corpus in display order: products, then articles and pages
func (h *Handler) searchItems() []search.Item {
	var items []search.Item
	if h.Catalog != nil {
		items = search.FromProducts(h.Catalog.Current().Products)
	}
	if h.Content != nil {
		items = append(items, h.Content.SearchItems()...)
	}
	return items
}
