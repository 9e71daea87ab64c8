package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/krishiseeds/catalog-service/internal/types"
)

func setupTestDatabase(ctx context.Context) (*postgres.PostgresContainer, error) {
	return postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp").
					WithStartupTimeout(60*time.Second),
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		),
	)
}

// connectTestPool starts a container, connects the shared pool and applies the schema
func connectTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := setupTestDatabase(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, Connect(ctx, connStr, 5, 1, 0, 0))
	t.Cleanup(Close)

	require.NoError(t, EnsureSchema(ctx, Pool()))
	// Applying twice must be harmless
	require.NoError(t, EnsureSchema(ctx, Pool()))
	return Pool()
}

func seedProducts() []types.Product {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []types.Product{
		{
			ID: "hybrid-okra", Name: "Hybrid Okra", Category: types.CategoryVegetable,
			Subcategory: "Okra", Description: "Early bearing okra",
			Seasonality:     []types.Season{types.SeasonMonsoon, types.SeasonSummer},
			DifficultyLevel: types.DifficultyBeginner, Availability: true, Featured: true,
			Specifications: []types.Specification{
				{ID: "maturity", Name: "Maturity", Value: "45 days", Category: types.SpecGroupHarvest},
			},
			Images:    []types.Image{{URL: "/img/okra.jpg", AltText: "Hybrid Okra", IsPrimary: true}},
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "gw-496-wheat", Name: "GW 496 Wheat", Category: types.CategoryWheat,
			Subcategory: "General", Description: "Rabi wheat for irrigated fields",
			Seasonality:     []types.Season{types.SeasonWinter},
			DifficultyLevel: types.DifficultyIntermediate, Availability: true,
			CreatedAt: created, UpdatedAt: created,
		},
	}
}

func TestProductStore(t *testing.T) {
	pool := connectTestPool(t)
	ctx := context.Background()
	store := NewProductStore(pool)

	n, err := store.Upsert(ctx, seedProducts())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	t.Run("list all", func(t *testing.T) {
		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "GW 496 Wheat", all[0].Name)
		assert.Equal(t, []types.Season{types.SeasonWinter}, all[0].Seasonality)
		assert.Empty(t, all[0].Images)
	})

	t.Run("list by keyword and featured", func(t *testing.T) {
		got, err := store.List(ctx, ListParams{Keyword: "okra"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "hybrid-okra", got[0].ID)
		assert.Len(t, got[0].Specifications, 1)

		featured := true
		got, err = store.List(ctx, ListParams{Featured: &featured})
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = store.List(ctx, ListParams{Category: "Wheat"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, types.CategoryWheat, got[0].Category)
	})

	t.Run("get by id or slug", func(t *testing.T) {
		p, err := store.GetByIDOrSlug(ctx, "hybrid-okra")
		require.NoError(t, err)
		assert.Equal(t, "Hybrid Okra", p.Name)

		p, err = store.GetByIDOrSlug(ctx, "Hybrid Okra")
		require.NoError(t, err)
		assert.Equal(t, "hybrid-okra", p.ID)

		_, err = store.GetByIDOrSlug(ctx, "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("increment views", func(t *testing.T) {
		require.NoError(t, store.IncrementViews(ctx, "hybrid-okra"))
		require.NoError(t, store.IncrementViews(ctx, "hybrid-okra"))
		p, err := store.Get(ctx, "hybrid-okra")
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Views)

		assert.ErrorIs(t, store.IncrementViews(ctx, "missing"), ErrProductNotFound)
	})

	t.Run("update merges patch", func(t *testing.T) {
		name := "Hybrid Okra Plus"
		available := false
		updated, err := store.Update(ctx, "hybrid-okra", types.ProductPatch{
			Name:         &name,
			Availability: &available,
		})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		assert.False(t, updated.Availability)
		// Untouched fields survive
		assert.Equal(t, "Early bearing okra", updated.Description)
		assert.Len(t, updated.Specifications, 1)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		stored, err := store.Get(ctx, "hybrid-okra")
		require.NoError(t, err)
		assert.Equal(t, name, stored.Name)
		assert.EqualValues(t, 2, stored.Views)

		_, err = store.Update(ctx, "missing", types.ProductPatch{Name: &name})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("upsert preserves views", func(t *testing.T) {
		_, err := store.Upsert(ctx, seedProducts()[:1])
		require.NoError(t, err)
		p, err := store.Get(ctx, "hybrid-okra")
		require.NoError(t, err)
		assert.Equal(t, "Hybrid Okra", p.Name)
		assert.EqualValues(t, 2, p.Views)
	})
}

func TestContactStore(t *testing.T) {
	pool := connectTestPool(t)
	ctx := context.Background()
	store := NewContactStore(pool)

	msg := &types.ContactMessage{
		Name: "Ravi Patel", Email: "ravi@example.com", Category: "dealership",
		Subject: "Dealer enquiry", Message: "Interested in cotton seed dealership",
	}
	require.NoError(t, store.Create(ctx, msg))
	assert.Regexp(t, `^msg_`, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, msg.ID, recent[0].ID)
	assert.Equal(t, "Dealer enquiry", recent[0].Subject)
}

func TestStatusWithoutPool(t *testing.T) {
	Close()
	assert.ErrorIs(t, Status(context.Background()), ErrNotConnected)
	assert.Nil(t, Stats())
	assert.ErrorIs(t, EnsureSchema(context.Background(), nil), ErrNotConnected)
}
