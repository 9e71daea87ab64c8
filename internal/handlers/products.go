package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/krishiseeds/catalog-service/internal/database"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// ListProductsRequest represents query parameters for listing products
type ListProductsRequest struct {
	Keyword  string `form:"keyword" json:"keyword"`
	Category string `form:"category" json:"category"`
	Featured string `form:"featured" json:"featured" jsonschema:"enum=true,enum=false"`
	Limit    int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=500" jsonschema:"minimum=1,maximum=500"`
}

// ListProductsResponse represents the response for listing products
type ListProductsResponse struct {
	Products []types.ProductSummary `json:"products" jsonschema:"required"`
	Total    int                    `json:"total" jsonschema:"required"`
}

// ListProducts returns product summaries
// @Summary List products
// @Description Returns product summaries filtered by keyword, category and featured flag
// @Tags products
// @Produce json
// @Param keyword query string false "Case-insensitive name or description match"
// @Param category query string false "Exact category"
// @Param featured query bool false "Only featured products when true"
// @Param limit query int false "Maximum number of products" minimum(1) maximum(500)
// @Success 200 {object} ListProductsResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	var req ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := database.ListParams{
		Keyword:  strings.TrimSpace(req.Keyword),
		Category: strings.TrimSpace(req.Category),
		Limit:    req.Limit,
	}
	if req.Featured != "" {
		featured, err := strconv.ParseBool(req.Featured)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "featured must be true or false"})
			return
		}
		params.Featured = &featured
	}

	products, err := h.Products.List(c.Request.Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	summaries := make([]types.ProductSummary, len(products))
	for i, p := range products {
		summaries[i] = p.Summary()
	}
	c.JSON(http.StatusOK, ListProductsResponse{Products: summaries, Total: len(summaries)})
}

// GetProduct returns one product by id or slug and counts the view
// @Summary Get product
// @Description Returns a full product by id or by the slug of the given name
// @Tags products
// @Produce json
// @Param idOrSlug path string true "Product id or name"
// @Success 200 {object} types.Product
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/products/{idOrSlug} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Products.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"))
	if errors.Is(err, database.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	h.countView(product.ID)
	c.JSON(http.StatusOK, product)
}

// countView increments the view counter without holding up the response.
// The request context is not used since it ends with the response.
func (h *Handler) countView(id string) {
	h.Metrics.RecordProductView()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.viewTimeout)
		defer cancel()
		if err := h.Products.IncrementViews(ctx, id); err != nil {
			h.logger.Warn().Err(err).Str("product", id).Msg("Failed to increment product views")
		}
	}()
}

// UpdateProduct merges a partial update into a product
// @Summary Update product
// @Description Applies a partial update; fields not present keep their current values
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param patch body types.ProductPatch true "Fields to change"
// @Success 200 {object} types.Product
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	var patch types.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if patch.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	updated, err := h.Products.Update(c.Request.Context(), c.Param("id"), patch)
	if errors.Is(err, database.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("product", c.Param("id")).Msg("Failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.logger.Info().Str("product", updated.ID).Msg("Product updated")
	c.JSON(http.StatusOK, updated)
}
