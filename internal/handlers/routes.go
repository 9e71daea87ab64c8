package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/krishiseeds/catalog-service/internal/middleware"
)

// RouterOptions configures the middleware around the handlers
type RouterOptions struct {
	AllowedOrigins []string
	// APILimiter applies to every /api request; nil disables it
	APILimiter *middleware.IPRateLimiter
	// ContactLimiter additionally limits contact submissions
	ContactLimiter *middleware.IPRateLimiter
	// TrackVisits enables the page-view middleware on non-API GETs
	TrackVisits bool
	EnableDocs  bool
	Logger      zerolog.Logger
}

// SetupRouter creates the gin engine with all routes
func SetupRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))
	if opts.TrackVisits && h.Visits != nil {
		router.Use(middleware.VisitLogger(h.Visits, "/api", "/health", "/metrics", "/docs"))
	}

	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.EnableDocs {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireSession := middleware.RequireSession(h.Sessions, h.Cookie.Name, h.logger)

	api := router.Group("/api")
	if opts.APILimiter != nil {
		api.Use(middleware.RateLimitMiddleware(opts.APILimiter))
	}
	{
		products := api.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/:idOrSlug", h.GetProduct)
			products.PUT("/:id", requireSession, h.UpdateProduct)
		}

		contact := []gin.HandlerFunc{}
		if opts.ContactLimiter != nil {
			contact = append(contact, middleware.RateLimitMiddleware(opts.ContactLimiter))
		}
		api.POST("/contact", append(contact, h.SubmitContact)...)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.Login)
			authGroup.POST("/logout", h.Logout)
			authGroup.GET("/session", requireSession, h.CurrentSession)
		}

		catalogGroup := api.Group("/catalog")
		{
			catalogGroup.GET("", h.GetCatalog)
			catalogGroup.GET("/:id", h.GetCatalogProduct)
			catalogGroup.POST("/reload", requireSession, h.ReloadCatalog)
			catalogGroup.PUT("/source", requireSession, h.UploadCatalog)
		}

		api.GET("/search", h.Search)
		api.POST("/visits", h.RecordVisit)
	}

	return router
}
