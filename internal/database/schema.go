package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements bootstrap the tables used by the service. They are
// idempotent and safe to run on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		category          TEXT NOT NULL,
		subcategory       TEXT NOT NULL DEFAULT 'General',
		description       TEXT NOT NULL DEFAULT '',
		long_description  TEXT NOT NULL DEFAULT '',
		specifications    JSONB NOT NULL DEFAULT '[]',
		seasonality       TEXT[] NOT NULL DEFAULT ARRAY['All-Season'],
		difficulty_level  TEXT NOT NULL DEFAULT 'Beginner',
		maturity_time     TEXT NOT NULL DEFAULT '',
		yield_expectation TEXT NOT NULL DEFAULT '',
		availability      BOOLEAN NOT NULL DEFAULT TRUE,
		featured          BOOLEAN NOT NULL DEFAULT FALSE,
		images            JSONB NOT NULL DEFAULT '[]',
		views             BIGINT NOT NULL DEFAULT 0,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
	`CREATE INDEX IF NOT EXISTS products_featured_idx ON products (featured) WHERE featured`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL,
		subject    TEXT NOT NULL,
		message    TEXT NOT NULL,
		ip         TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS contacts_created_at_idx ON contacts (created_at DESC)`,
}

// EnsureSchema creates missing tables and indexes
func EnsureSchema(ctx context.Context, p *pgxpool.Pool) error {
	if p == nil {
		return ErrNotConnected
	}
	for _, stmt := range schemaStatements {
		if _, err := p.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("error applying schema: %w", err)
		}
	}
	return nil
}
