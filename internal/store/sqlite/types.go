package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
)

// typeColumns is the ordered list of columns selected in type queries.
// Must match the scan order in scanType.
const typeColumns = `id, name, COALESCE(note, ''), created_at`

// scanType scans a sql.Row (or sql.Rows via its Scan method) into a domain.LinkType.
func scanType(scanner interface{ Scan(dest ...any) error }) (*domain.LinkType, error) {
	var t domain.LinkType
	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Note,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateType inserts a new relationship type and fills in its ID and timestamp.
func (s *Store) CreateType(ctx context.Context, t *domain.LinkType) error {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO link_types (name, note, created_at)
		VALUES (?, ?, ?)`,
		t.Name,
		nullString(t.Note),
		formatTime(now),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	t.ID = id
	t.CreatedAt = now
	return nil
}

// GetType retrieves a type by its ID.
// Returns store.ErrTypeNotFound if the type does not exist.
func (s *Store) GetType(ctx context.Context, id int64) (*domain.LinkType, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+typeColumns+` FROM link_types WHERE id = ?`, id)

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
