package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/krishiseeds/catalog-service/internal/parsers"
	"github.com/krishiseeds/catalog-service/internal/storage"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// ErrSourceUnreadable is returned when a catalog file cannot be parsed at all
var ErrSourceUnreadable = errors.New("catalog: source unreadable")

// Source supplies the canonical product collection
type Source interface {
	FetchAll(ctx context.Context) ([]types.Product, error)
	Name() string
}

// Load fetches the full catalog. Any failure is logged and yields an empty
// catalog; callers render "no products" instead of an error page.
func Load(ctx context.Context, src Source, logger zerolog.Logger) []types.Product {
	products, err := src.FetchAll(ctx)
	if err != nil {
		logger.Error().Err(err).Str("source", src.Name()).Msg("Catalog load failed, serving empty catalog")
		return []types.Product{}
	}
	if products == nil {
		return []types.Product{}
	}
	return products
}

// FileSource reads a spreadsheet from storage and normalizes its rows
type FileSource struct {
	Storage    storage.Storage
	Key        string
	Options    parsers.Options
	Normalizer *Normalizer
	Logger     zerolog.Logger

	lastSkipped int
}

// NewFileSource creates a spreadsheet-backed source
func NewFileSource(store storage.Storage, key string, opts parsers.Options, logger zerolog.Logger) *FileSource {
	return &FileSource{
		Storage:    store,
		Key:        key,
		Options:    opts,
		Normalizer: NewNormalizer(),
		Logger:     logger.With().Str("component", "catalog_file_source").Logger(),
	}
}

// Name identifies the source in logs and metrics
func (s *FileSource) Name() string {
	return "file"
}

// FetchAll parses the stored spreadsheet and normalizes every row
func (s *FileSource) FetchAll(ctx context.Context) ([]types.Product, error) {
	content, err := s.Storage.Get(ctx, s.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	result, err := parsers.ParseFile(s.Key, content, s.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if result.HasFatalError() {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnreadable, result.Errors[0].Message)
	}

	for _, w := range result.Warnings {
		s.Logger.Warn().Interface("row", w.RowNumber).Msg(w.Message)
	}

	batch := s.Normalizer.NormalizeAll(result.Records)
	for _, w := range batch.Warnings {
		s.Logger.Warn().Interface("row", w.RowNumber).Msg(w.Message)
	}
	s.lastSkipped = batch.Skipped

	s.Logger.Info().
		Str("key", s.Key).
		Int("rows", result.ValidRows).
		Int("products", len(batch.Products)).
		Int("skipped", batch.Skipped).
		Msg("Catalog file normalized")

	return batch.Products, nil
}

// Skipped returns the number of rows skipped by the latest fetch
func (s *FileSource) Skipped() int {
	return s.lastSkipped
}

// ProductLister lists canonical product documents
type ProductLister interface {
	ListAll(ctx context.Context) ([]types.Product, error)
}

// StoreSource reads already-canonical products from the database
type StoreSource struct {
	Lister ProductLister
}

// Name identifies the source in logs and metrics
func (s *StoreSource) Name() string {
	return "database"
}

// FetchAll returns the stored products unchanged
func (s *StoreSource) FetchAll(ctx context.Context) ([]types.Product, error) {
	if s.Lister == nil {
		return nil, errors.New("catalog: database source not configured")
	}
	return s.Lister.ListAll(ctx)
}

// StaticSource serves a fixed product list
type StaticSource struct {
	Products []types.Product
	Err      error
}

// Name identifies the source in logs and metrics
func (s *StaticSource) Name() string {
	return "static"
}

// FetchAll returns a copy of the fixed product list
func (s *StaticSource) FetchAll(ctx context.Context) ([]types.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]types.Product(nil), s.Products...), nil
}
