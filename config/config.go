package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/krishiseeds/catalog-service/internal/telemetry"
)

// Catalog source kinds
const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Catalog   CatalogConfig    `mapstructure:"catalog"`
	Content   ContentConfig    `mapstructure:"content"`
	Storage   StorageConfig    `mapstructure:"storage"`
	Session   SessionConfig    `mapstructure:"session"`
	Admin     AdminConfig      `mapstructure:"admin"`
	Mail      MailConfig       `mapstructure:"mail"`
	Visitors  VisitorsConfig   `mapstructure:"visitors"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
	CORS      CORSConfig       `mapstructure:"cors"`
	Telemetry telemetry.Config `mapstructure:"telemetry"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableDocs      bool          `mapstructure:"enable_docs"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// CatalogConfig selects where the in-memory catalog is loaded from
type CatalogConfig struct {
	// Source is "file" (spreadsheet in storage) or "database"
	Source string `mapstructure:"source"`
	// FileKey is the storage key of the spreadsheet
	FileKey string `mapstructure:"file_key"`
	Sheet   string `mapstructure:"sheet"`
	// Watch reloads the catalog when the spreadsheet changes on disk
	Watch bool `mapstructure:"watch"`
}

// ContentConfig locates markdown articles and pages
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type     string `mapstructure:"type"`
	BasePath string `mapstructure:"base_path"`
}

// SessionConfig holds admin session settings
type SessionConfig struct {
	Path         string        `mapstructure:"path"`
	TTL          time.Duration `mapstructure:"ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
	PurgeEvery   time.Duration `mapstructure:"purge_every"`
}

// AdminConfig is the single administrator account
type AdminConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

// MailConfig holds SMTP settings for contact confirmations
type MailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	Company  string `mapstructure:"company"`
}

// VisitorsConfig holds visitor logging settings
type VisitorsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DatabaseURL string `mapstructure:"database_url"`
	QueueSize   int    `mapstructure:"queue_size"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	ContactPerMinute  float64       `mapstructure:"contact_per_minute"`
	ContactBurst      int           `mapstructure:"contact_burst"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := loadEnvFile(); err != nil {
		// .env is optional
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.SetEnvPrefix("CATALOG_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// loadEnvFile loads the first .env found. Variables already set in the
// environment win.
func loadEnvFile() error {
	for _, dir := range []string{".", "./config"} {
		envFile := filepath.Join(dir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			return godotenv.Load(envFile)
		}
	}
	return fmt.Errorf("no .env file found")
}

// bindEnvVars binds conventional unprefixed variable names
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("database.url", "CATALOG_SERVICE_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("server.port", "CATALOG_SERVICE_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.host", "CATALOG_SERVICE_SERVER_HOST", "HOST")
	_ = v.BindEnv("logging.level", "CATALOG_SERVICE_LOGGING_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("storage.base_path", "CATALOG_SERVICE_STORAGE_BASE_PATH", "STORAGE_PATH")
	_ = v.BindEnv("admin.email", "CATALOG_SERVICE_ADMIN_EMAIL", "ADMIN_EMAIL")
	_ = v.BindEnv("admin.password_hash", "CATALOG_SERVICE_ADMIN_PASSWORD_HASH", "ADMIN_PASSWORD_HASH")
	_ = v.BindEnv("mail.host", "CATALOG_SERVICE_MAIL_HOST", "SMTP_HOST")
	_ = v.BindEnv("mail.port", "CATALOG_SERVICE_MAIL_PORT", "SMTP_PORT")
	_ = v.BindEnv("mail.username", "CATALOG_SERVICE_MAIL_USERNAME", "SMTP_USER")
	_ = v.BindEnv("mail.password", "CATALOG_SERVICE_MAIL_PASSWORD", "SMTP_PASS")
	_ = v.BindEnv("visitors.database_url", "CATALOG_SERVICE_VISITORS_DATABASE_URL", "VISITORS_DATABASE_URL")
	_ = v.BindEnv("cors.allowed_origins", "CATALOG_SERVICE_CORS_ALLOWED_ORIGINS", "ALLOWED_ORIGINS")
	_ = v.BindEnv("telemetry.endpoint", "CATALOG_SERVICE_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.enable_docs", true)

	// Database defaults
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)

	// Catalog defaults
	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.file_key", "catalog/products.xlsx")
	v.SetDefault("catalog.sheet", "")
	v.SetDefault("catalog.watch", true)

	v.SetDefault("content.dir", "./content")

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_path", "./data")

	// Session defaults
	v.SetDefault("session.path", "./data/sessions.db")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.cookie_name", "sid")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("session.purge_every", time.Hour)

	// Mail defaults
	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.company", "Krishi Seeds")

	// Visitor defaults
	v.SetDefault("visitors.enabled", false)
	v.SetDefault("visitors.queue_size", 1024)

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.contact_per_minute", 1)
	v.SetDefault("rate_limit.contact_burst", 5)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", telemetry.DefaultServiceName)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Catalog.Source {
	case SourceFile:
		if strings.TrimSpace(c.Catalog.FileKey) == "" {
			return errors.New("catalog.file_key is required for the file source")
		}
	case SourceDatabase:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the database catalog source")
		}
	default:
		return fmt.Errorf("unknown catalog.source %q (want %s or %s)", c.Catalog.Source, SourceFile, SourceDatabase)
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		return errors.New("mail.host and mail.from are required when mail is enabled")
	}
	if c.Mail.Enabled && (c.Mail.Port < 1 || c.Mail.Port > 65535) {
		return fmt.Errorf("invalid mail.port %d", c.Mail.Port)
	}
	if c.Visitors.Enabled && c.Visitors.DatabaseURL == "" && c.Database.URL == "" {
		return errors.New("visitors.database_url or database.url is required when visitor logging is enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		return errors.New("rate_limit.requests_per_second and rate_limit.burst must be positive")
	}
	if c.Session.TTL < 0 {
		return errors.New("session.ttl must not be negative")
	}
	return nil
}

// Addr is the server listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// VisitorsURL returns the visitor log database, falling back to the main database
func (c *Config) VisitorsURL() string {
	if c.Visitors.DatabaseURL != "" {
		return c.Visitors.DatabaseURL
	}
	return c.Database.URL
}

// splitList expands comma separated entries, as env vars arrive as one string
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// GetDatabaseURL returns the database URL from config or environment
func GetDatabaseURL() string {
	if cfg := Get(); cfg != nil && cfg.Database.URL != "" {
		return cfg.Database.URL
	}
	return os.Getenv("DATABASE_URL")
}
