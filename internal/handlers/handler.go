package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/database"
	"github.com/krishiseeds/catalog-service/internal/mail"
	"github.com/krishiseeds/catalog-service/internal/metrics"
	"github.com/krishiseeds/catalog-service/internal/parsers"
	"github.com/krishiseeds/catalog-service/internal/search"
	"github.com/krishiseeds/catalog-service/internal/session"
	"github.com/krishiseeds/catalog-service/internal/storage"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// ProductRepository is the persistent product store
type ProductRepository interface {
	List(ctx context.Context, params database.ListParams) ([]types.Product, error)
	GetByIDOrSlug(ctx context.Context, param string) (types.Product, error)
	IncrementViews(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch types.ProductPatch) (types.Product, error)
}

// ContactRepository stores contact submissions
type ContactRepository interface {
	Create(ctx context.Context, msg *types.ContactMessage) error
}

// CatalogSnapshot serves the in-memory catalog
type CatalogSnapshot interface {
	Current() *catalog.View
	Find(id string) (types.Product, bool)
	Reload(ctx context.Context) *catalog.View
}

// SessionStore manages admin sessions
type SessionStore interface {
	Create(email string) (session.Session, error)
	Get(token string) (session.Session, error)
	Delete(token string) error
	TTL() time.Duration
}

// Authenticator verifies admin credentials
type Authenticator interface {
	Check(email, password string) error
}

// MailSender sends mail without blocking the request
type MailSender interface {
	Send(msg mail.Message) <-chan struct{}
}

// SearchCorpus supplies non-product search items
type SearchCorpus interface {
	SearchItems() []search.Item
}

// VisitQueue accepts visits for background storage
type VisitQueue interface {
	Enqueue(v types.Visit) bool
}

// CookieConfig controls the admin session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// Deps are the collaborators of the HTTP handlers. Nil optional fields
// disable the corresponding feature.
type Deps struct {
	Products ProductRepository
	Contacts ContactRepository
	Catalog  CatalogSnapshot
	Sessions SessionStore
	Auth     Authenticator
	Mail     MailSender
	Content  SearchCorpus
	Visits   VisitQueue

	// Uploads and CatalogKey locate the catalog spreadsheet for replacement
	Uploads        storage.Storage
	CatalogKey     string
	CatalogOptions parsers.Options

	// DBStatus reports database health; nil means not configured
	DBStatus func(ctx context.Context) error

	Metrics     *metrics.Recorder
	Cookie      CookieConfig
	CompanyName string
	Logger      zerolog.Logger
}

// Handler serves the catalog API
type Handler struct {
	Deps

	validate    *validator.Validate
	viewTimeout time.Duration
	now         func() time.Time
	logger      zerolog.Logger
}

// New creates the handler set
func New(deps Deps) *Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRecorder()
	}
	if deps.Cookie.Name == "" {
		deps.Cookie.Name = "sid"
	}
	if deps.CompanyName == "" {
		deps.CompanyName = "Krishi Seeds"
	}
	return &Handler{
		Deps:        deps,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		viewTimeout: 5 * time.Second,
		now:         time.Now,
		logger:      deps.Logger.With().Str("component", "handlers").Logger(),
	}
}
