package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// ErrProductNotFound is returned when no product matches an id or slug
var ErrProductNotFound = errors.New("database: product not found")

const productColumns = `id, name, category, subcategory, description, long_description,
	specifications, seasonality, difficulty_level, maturity_time, yield_expectation,
	availability, featured, images, views, created_at, updated_at`

// ListParams narrows a product listing
type ListParams struct {
	Keyword  string
	Category string
	Featured *bool
	Limit    int
}

// ProductStore persists canonical products in Postgres
type ProductStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewProductStore creates a store on p
func NewProductStore(p *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: p, now: time.Now}
}

// List returns products matching params, featured first then by name
func (s *ProductStore) List(ctx context.Context, params ListParams) ([]types.Product, error) {
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		  AND ($3::boolean IS NULL OR featured = $3)
		ORDER BY featured DESC, name ASC
		LIMIT $4
	`
	rows, err := s.pool.Query(ctx, query, params.Keyword, params.Category, params.Featured, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return collectProducts(rows)
}

// ListAll returns every stored product. It satisfies catalog.ProductLister.
func (s *ProductStore) ListAll(ctx context.Context) ([]types.Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return collectProducts(rows)
}

// Get returns the product with the exact id
func (s *ProductStore) Get(ctx context.Context, id string) (types.Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Product{}, ErrProductNotFound
	}
	if err != nil {
		return types.Product{}, fmt.Errorf("error getting product: %w", err)
	}
	return p, nil
}

// GetByIDOrSlug resolves a route parameter: the exact id first, then the
// slug of the parameter, so "Hybrid Okra" and "hybrid-okra" both resolve.
func (s *ProductStore) GetByIDOrSlug(ctx context.Context, param string) (types.Product, error) {
	p, err := s.Get(ctx, param)
	if !errors.Is(err, ErrProductNotFound) {
		return p, err
	}
	slug := catalog.Slugify(param)
	if slug == "" || slug == param {
		return types.Product{}, ErrProductNotFound
	}
	return s.Get(ctx, slug)
}

// IncrementViews bumps the view counter
func (s *ProductStore) IncrementViews(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Update merges patch onto the stored product inside a transaction and
// returns the result. Fields absent from the patch keep their values.
func (s *ProductStore) Update(ctx context.Context, id string, patch types.ProductPatch) (types.Product, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return types.Product{}, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	current, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.Product{}, ErrProductNotFound
	}
	if err != nil {
		return types.Product{}, fmt.Errorf("error loading product: %w", err)
	}

	updated := patch.Apply(current, s.now().UTC())
	if patch.Images != nil {
		updated.Images = catalog.OrderImages(updated.Images)
	}

	args, err := productArgs(updated)
	if err != nil {
		return types.Product{}, err
	}
	_, err = tx.Exec(ctx, `
		UPDATE products SET
			name = $2, category = $3, subcategory = $4, description = $5, long_description = $6,
			specifications = $7, seasonality = $8, difficulty_level = $9, maturity_time = $10,
			yield_expectation = $11, availability = $12, featured = $13, images = $14,
			updated_at = $15
		WHERE id = $1
	`, append(args[:14:14], args[16])...)
	if err != nil {
		return types.Product{}, fmt.Errorf("error updating product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return types.Product{}, fmt.Errorf("error committing product update: %w", err)
	}
	return updated, nil
}

// Upsert inserts or replaces products by id in one batch. Views and
// created_at of existing rows are preserved.
func (s *ProductStore) Upsert(ctx context.Context, products []types.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, p := range products {
		args, err := productArgs(p)
		if err != nil {
			return 0, err
		}
		batch.Queue(`
			INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				subcategory = EXCLUDED.subcategory,
				description = EXCLUDED.description,
				long_description = EXCLUDED.long_description,
				specifications = EXCLUDED.specifications,
				seasonality = EXCLUDED.seasonality,
				difficulty_level = EXCLUDED.difficulty_level,
				maturity_time = EXCLUDED.maturity_time,
				yield_expectation = EXCLUDED.yield_expectation,
				availability = EXCLUDED.availability,
				featured = EXCLUDED.featured,
				images = EXCLUDED.images,
				updated_at = EXCLUDED.updated_at
		`, args...)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	count := 0
	for range products {
		if _, err := results.Exec(); err != nil {
			return count, fmt.Errorf("error upserting product: %w", err)
		}
		count++
	}
	return count, nil
}

// productArgs returns the 17 column values in productColumns order
func productArgs(p types.Product) ([]any, error) {
	specs, err := json.Marshal(nonNil(p.Specifications))
	if err != nil {
		return nil, fmt.Errorf("error encoding specifications: %w", err)
	}
	images, err := json.Marshal(nonNil(p.Images))
	if err != nil {
		return nil, fmt.Errorf("error encoding images: %w", err)
	}
	seasons := make([]string, len(p.Seasonality))
	for i, season := range p.Seasonality {
		seasons[i] = string(season)
	}

	created, updated := p.CreatedAt, p.UpdatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	if updated.IsZero() {
		updated = created
	}

	return []any{
		p.ID, p.Name, string(p.Category), p.Subcategory, p.Description, p.LongDescription,
		string(specs), seasons, string(p.DifficultyLevel), p.MaturityTime, p.YieldExpectation,
		p.Availability, p.Featured, string(images), p.Views, created, updated,
	}, nil
}

func scanProduct(row pgx.Row) (types.Product, error) {
	var (
		p                    types.Product
		category, difficulty string
		specs, images        []byte
		seasons              []string
	)
	err := row.Scan(
		&p.ID, &p.Name, &category, &p.Subcategory, &p.Description, &p.LongDescription,
		&specs, &seasons, &difficulty, &p.MaturityTime, &p.YieldExpectation,
		&p.Availability, &p.Featured, &images, &p.Views, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return types.Product{}, err
	}

	p.Category = types.Category(category)
	p.DifficultyLevel = types.Difficulty(difficulty)
	p.Seasonality = make([]types.Season, len(seasons))
	for i, season := range seasons {
		p.Seasonality[i] = types.Season(season)
	}
	if err := json.Unmarshal(specs, &p.Specifications); err != nil {
		return types.Product{}, fmt.Errorf("error decoding specifications of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return types.Product{}, fmt.Errorf("error decoding images of %s: %w", p.ID, err)
	}
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]types.Product, error) {
	defer rows.Close()

	products := []types.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
