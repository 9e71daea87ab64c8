package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/krishiseeds/catalog-service/config"
	_ "github.com/krishiseeds/catalog-service/docs"
	"github.com/krishiseeds/catalog-service/internal/auth"
	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/content"
	"github.com/krishiseeds/catalog-service/internal/database"
	"github.com/krishiseeds/catalog-service/internal/handlers"
	"github.com/krishiseeds/catalog-service/internal/mail"
	"github.com/krishiseeds/catalog-service/internal/metrics"
	"github.com/krishiseeds/catalog-service/internal/middleware"
	"github.com/krishiseeds/catalog-service/internal/parsers"
	"github.com/krishiseeds/catalog-service/internal/session"
	"github.com/krishiseeds/catalog-service/internal/storage"
	"github.com/krishiseeds/catalog-service/internal/sweepers"
	"github.com/krishiseeds/catalog-service/internal/telemetry"
	"github.com/krishiseeds/catalog-service/internal/visitors"
)

// @title Seed Catalog API
// @version 1.0
// @description Product catalog, site search, contact and admin API for the seed storefront.
// @BasePath /
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting catalog service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.ConfigFromEnv(cfg.Telemetry))
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx, database.Pool()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	logger.Info().Msg("Database connected")

	recorder := metrics.NewRecorder()
	products := database.NewProductStore(database.Pool())
	contacts := database.NewContactStore(database.Pool())

	store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open storage")
	}

	catalogOpts := parsers.Options{Sheet: cfg.Catalog.Sheet}
	var source catalog.Source
	switch cfg.Catalog.Source {
	case config.SourceDatabase:
		source = &catalog.StoreSource{Lister: products}
	default:
		source = catalog.NewFileSource(store, cfg.Catalog.FileKey, catalogOpts, *logger)
	}
	snapshot := catalog.NewSnapshot(source, recorder, *logger)
	snapshot.Reload(ctx)

	if cfg.Catalog.Source == config.SourceFile && cfg.Catalog.Watch {
		go func() {
			if err := snapshot.Watch(ctx, store.LocalPath(cfg.Catalog.FileKey)); err != nil {
				logger.Error().Err(err).Msg("Catalog watcher stopped")
			}
		}()
	}

	corpus, err := content.NewLoader(cfg.Content.Dir, *logger).Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load content, search covers products only")
		corpus = &content.Corpus{}
	}

	sessions, err := session.Open(session.OpenOptions{Path: cfg.Session.Path, TTL: cfg.Session.TTL})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer sessions.Close()
	sweeper := sweepers.NewSessionSweeper(sessions, *logger, cfg.Session.PurgeEvery)
	go sweeper.Start(ctx)
	defer sweeper.Stop()

	authenticator := auth.NewAuthenticator(auth.Admin{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	})
	if !authenticator.Configured() {
		logger.Warn().Msg("Admin account not configured, admin login disabled")
	}

	var mailer mail.Mailer = mail.NewLogMailer(*logger)
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	}

	deps := handlers.Deps{
		Products:       products,
		Contacts:       contacts,
		Catalog:        snapshot,
		Sessions:       sessions,
		Auth:           authenticator,
		Mail:           mail.NewAsync(mailer, recorder, *logger),
		Content:        corpus,
		DBStatus:       database.Status,
		Metrics:        recorder,
		Cookie:         handlers.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		CompanyName:    cfg.Mail.Company,
		CatalogOptions: catalogOpts,
		Logger:         *logger,
	}
	if cfg.Catalog.Source == config.SourceFile {
		deps.Uploads = store
		deps.CatalogKey = cfg.Catalog.FileKey
	}

	var visitRecorder *visitors.Recorder
	if cfg.Visitors.Enabled {
		visitStore, err := visitors.Open(ctx, cfg.VisitorsURL())
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open visitor database")
		}
		defer visitStore.Close()
		if err := visitStore.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to apply visitor schema")
		}
		visitRecorder = visitors.NewRecorder(visitStore, cfg.Visitors.QueueSize, *logger)
		visitRecorder.Start()
		deps.Visits = visitRecorder
	}

	routerOpts := handlers.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrackVisits:    cfg.Visitors.Enabled,
		EnableDocs:     cfg.Server.EnableDocs,
		Logger:         *logger,
	}
	if cfg.RateLimit.Enabled {
		routerOpts.APILimiter = middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.Burst,
		})
		contactCfg := middleware.ContactRateLimiterConfig()
		if cfg.RateLimit.ContactPerMinute > 0 {
			contactCfg.RequestsPerSecond = cfg.RateLimit.ContactPerMinute / 60
		}
		if cfg.RateLimit.ContactBurst > 0 {
			contactCfg.BurstSize = cfg.RateLimit.ContactBurst
		}
		routerOpts.ContactLimiter = middleware.NewIPRateLimiter(contactCfg)

		if cfg.RateLimit.CleanupInterval > 0 {
			routerOpts.APILimiter.StartCleanup(ctx, cfg.RateLimit.CleanupInterval)
			routerOpts.ContactLimiter.StartCleanup(ctx, cfg.RateLimit.CleanupInterval)
		}
	}

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.SetupRouter(handlers.New(deps), routerOpts)

	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if visitRecorder != nil {
		visitRecorder.Stop()
		if n := visitRecorder.Dropped(); n > 0 {
			logger.Warn().Int64("dropped", n).Msg("Visits dropped while the queue was full")
		}
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "catalog-service").Logger()
	return &logger
}
