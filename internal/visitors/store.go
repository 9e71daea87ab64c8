// Package visitors keeps the storefront visit log in Postgres through
// database/sql and lib/pq.
package visitors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/krishiseeds/catalog-service/internal/pkg/ids"
	"github.com/krishiseeds/catalog-service/internal/types"
)

var (
	ErrDuplicateVisit = errors.New("visitors: duplicate visit id")
	ErrInvalidVisit   = errors.New("visitors: path is required")
)

const schema = `
	CREATE TABLE IF NOT EXISTS visits (
		id         TEXT PRIMARY KEY,
		visitor_id TEXT NOT NULL,
		path       TEXT NOT NULL,
		referrer   TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		ip         TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS visits_created_at_idx ON visits (created_at DESC);
`

// Store writes and reads visits
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to dsn with the postgres driver
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening visitor database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to visitor database: %w", err)
	}
	return NewStore(db), nil
}

// Close closes the underlying handle
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the visits table
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error applying visitor schema: %w", err)
	}
	return nil
}

// Record inserts v, filling in id and timestamp when missing
func (s *Store) Record(ctx context.Context, v *types.Visit) error {
	if v.Path == "" {
		return ErrInvalidVisit
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	if v.ID == "" {
		v.ID = ids.NewAt(ids.PrefixVisit, v.CreatedAt)
	}

	query := `
		INSERT INTO visits (id, visitor_id, path, referrer, user_agent, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query, v.ID, v.VisitorID, v.Path, v.Referrer, v.UserAgent, v.IP, v.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateVisit
		}
		return fmt.Errorf("error recording visit: %w", err)
	}
	return nil
}

// Recent returns the newest visits
func (s *Store) Recent(ctx context.Context, limit int) ([]types.Visit, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, visitor_id, path, referrer, user_agent, ip, created_at
		FROM visits
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing visits: %w", err)
	}
	defer rows.Close()

	visits := []types.Visit{}
	for rows.Next() {
		var v types.Visit
		if err := rows.Scan(&v.ID, &v.VisitorID, &v.Path, &v.Referrer, &v.UserAgent, &v.IP, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning visit: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visits: %w", err)
	}
	return visits, nil
}

// UniqueVisitors counts distinct visitor ids seen since t
func (s *Store) UniqueVisitors(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT visitor_id) FROM visits WHERE created_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting visitors: %w", err)
	}
	return n, nil
}
