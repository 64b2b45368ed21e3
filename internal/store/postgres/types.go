package postgres

import (
	"context"
	"database/sql"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
)

const typeColumns = `id, name, COALESCE(note, ''), created_at`

func scanType(scanner interface{ Scan(dest ...any) error }) (*domain.LinkType, error) {
	var t domain.LinkType
	err := scanner.Scan(&t.ID, &t.Name, &t.Note, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateType inserts a new relationship type and fills in its ID and timestamp.
func (s *Store) CreateType(ctx context.Context, t *domain.LinkType) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO link_types (name, note)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		t.Name,
		nullString(t.Note),
	).Scan(&t.ID, &t.CreatedAt)
}

// GetType retrieves a type by its ID.
// Returns store.ErrTypeNotFound if the type does not exist.
func (s *Store) GetType(ctx context.Context, id int64) (*domain.LinkType, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+typeColumns+` FROM link_types WHERE id = $1`, id)

	t, err := scanType(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTypes returns all types in insertion order.
func (s *Store) ListTypes(ctx context.Context) ([]*domain.LinkType, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+typeColumns+` FROM link_types ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.LinkType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if types == nil {
		types = []*domain.LinkType{}
	}

	return types, nil
}
