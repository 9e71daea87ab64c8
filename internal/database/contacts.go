package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krishiseeds/catalog-service/internal/pkg/ids"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// ContactStore persists contact form submissions
type ContactStore struct {
	pool *pgxpool.Pool
}

// NewContactStore creates a store on p
func NewContactStore(p *pgxpool.Pool) *ContactStore {
	return &ContactStore{pool: p}
}

// Create assigns an id and creation time to msg and inserts it
func (s *ContactStore) Create(ctx context.Context, msg *types.ContactMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if msg.ID == "" {
		msg.ID = ids.NewAt(ids.PrefixContact, msg.CreatedAt)
	}

	query := `
		INSERT INTO contacts (id, name, email, phone, category, subject, message, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.pool.Exec(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Phone, msg.Category,
		msg.Subject, msg.Message, msg.IP, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error creating contact message: %w", err)
	}
	return nil
}

// Recent returns the newest submissions
func (s *ContactStore) Recent(ctx context.Context, limit int) ([]types.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, phone, category, subject, message, ip, created_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing contact messages: %w", err)
	}
	defer rows.Close()

	messages := []types.ContactMessage{}
	for rows.Next() {
		var m types.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Category,
			&m.Subject, &m.Message, &m.IP, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning contact message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}
	return messages, nil
}
