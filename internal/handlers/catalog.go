package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/filter"
	"github.com/krishiseeds/catalog-service/internal/middleware"
	"github.com/krishiseeds/catalog-service/internal/parsers"
	"github.com/krishiseeds/catalog-service/internal/storage"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// maxUploadSize limits catalog spreadsheet uploads
const maxUploadSize = 20 << 20

// CatalogResponse is the filtered, sorted catalog view
type CatalogResponse struct {
	filter.Result
	Query    filter.Query `json:"query"`
	Source   string       `json:"source"`
	LoadedAt time.Time    `json:"loadedAt"`
}

// ReloadResponse reports the snapshot after a reload
type ReloadResponse struct {
	Products int       `json:"products" jsonschema:"required"`
	Source   string    `json:"source" jsonschema:"required"`
	LoadedAt time.Time `json:"loadedAt" jsonschema:"required"`
}

// UploadResponse reports a replaced catalog spreadsheet
type UploadResponse struct {
	ReloadResponse
	Rows     int      `json:"rows"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// GetCatalog returns the catalog filtered, sorted and faceted
// @Summary Browse catalog
// @Description Filters (AND across facets, OR within one), sorts and counts the in-memory catalog
// @Tags catalog
// @Produce json
// @Param category query []string false "Categories (comma separated or repeated)"
// @Param season query []string false "Seasons"
// @Param difficulty query []string false "Difficulty levels"
// @Param available query bool false "Only available products when true"
// @Param featured query bool false "Only featured products when true"
// @Param q query string false "Text match over name, description and category"
// @Param sort query string false "Sort field" Enums(name, category, createdAt, featured)
// @Param dir query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} CatalogResponse
// @Router /api/catalog [get]
func (h *Handler) GetCatalog(c *gin.Context) {
	view := h.Catalog.Current()
	q := filter.ParseQuery(c.Request.URL.Query())

	result := filter.Run(view.Products, q)
	h.Metrics.RecordFilter(result.Stats.TotalProducts, result.Stats.FilteredCount)

	c.JSON(http.StatusOK, CatalogResponse{
		Result:   result,
		Query:    q,
		Source:   view.Source,
		LoadedAt: view.LoadedAt,
	})
}

// GetCatalogProduct returns one product from the in-memory catalog
// @Summary Get catalog product
// @Tags catalog
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} types.Product
// @Failure 404 {object} map[string]string "Product not found"
// @Router /api/catalog/{id} [get]
func (h *Handler) GetCatalogProduct(c *gin.Context) {
	product, ok := h.Catalog.Find(c.Param("id"))
	if !ok {
		product, ok = h.Catalog.Find(catalog.Slugify(c.Param("id")))
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// ReloadCatalog reloads the snapshot from its source
// @Summary Reload catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} ReloadResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/catalog/reload [post]
func (h *Handler) ReloadCatalog(c *gin.Context) {
	view := h.Catalog.Reload(c.Request.Context())
	c.JSON(http.StatusOK, reloadResponse(view))
}

// UploadCatalog replaces the catalog spreadsheet and reloads
// @Summary Replace catalog spreadsheet
// @Description Validates the uploaded CSV/XLSX, stores it and reloads the catalog
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog spreadsheet"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Unreadable spreadsheet"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/catalog/source [put]
func (h *Handler) UploadCatalog(c *gin.Context) {
	if h.Uploads == nil || h.CatalogKey == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Catalog uploads are not enabled"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	want := types.DetectFileType(h.CatalogKey)
	if got := types.DetectFileType(fh.Filename); got != want {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("expected a %s file", want)})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload"})
		return
	}

	// Parse before storing so a broken file never replaces a good one
	parsed, err := parsers.ParseFile(h.CatalogKey, content, h.CatalogOptions)
	if err != nil || parsed.HasFatalError() {
		msg := "Spreadsheet could not be read"
		if err == nil {
			msg = parsed.Errors[0].Message
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
		return
	}
	batch := catalog.NewNormalizer().NormalizeAll(parsed.Records)

	meta := &storage.Metadata{
		ContentType:  fh.Header.Get("Content-Type"),
		OriginalName: filepath.Base(fh.Filename),
		UploadedAt:   h.now().UTC(),
	}
	if sess, ok := currentAdmin(c); ok {
		meta.UploadedBy = sess
	}
	if err := h.Uploads.Put(c.Request.Context(), h.CatalogKey, content, meta); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store catalog upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store catalog"})
		return
	}

	view := h.Catalog.Reload(c.Request.Context())
	h.logger.Info().
		Str("file", meta.OriginalName).
		Int("rows", len(parsed.Records)).
		Int("products", len(view.Products)).
		Msg("Catalog spreadsheet replaced")

	warnings := make([]string, 0, len(parsed.Warnings)+len(batch.Warnings))
	for _, w := range parsed.Warnings {
		warnings = append(warnings, w.Message)
	}
	for _, w := range batch.Warnings {
		warnings = append(warnings, w.Message)
	}

	c.JSON(http.StatusOK, UploadResponse{
		ReloadResponse: reloadResponse(view),
		Rows:           len(parsed.Records),
		Skipped:        batch.Skipped,
		Warnings:       warnings,
	})
}

func reloadResponse(view *catalog.View) ReloadResponse {
	return ReloadResponse{Products: len(view.Products), Source: view.Source, LoadedAt: view.LoadedAt}
}

func currentAdmin(c *gin.Context) (string, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return "", false
	}
	return sess.Email, true
}
