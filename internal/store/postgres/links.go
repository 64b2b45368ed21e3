package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
)

const linkColumns = `id, tag_id, type_id, lot, COALESCE(note, ''), created_at`

func scanLink(scanner interface{ Scan(dest ...any) error }) (*domain.Link, error) {
	var l domain.Link
	err := scanner.Scan(&l.ID, &l.TagID, &l.TypeID, &l.Lot, &l.Note, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// InsertLink inserts a link unless the (tag, type, lot) triple already
// exists. ON CONFLICT DO NOTHING with RETURNING yields no row when the
// triple is taken, which stands in for the created flag.
func (s *Store) InsertLink(ctx context.Context, link *domain.Link) (bool, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO links (tag_id, type_id, lot, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tag_id, type_id, lot) DO NOTHING
		RETURNING id, created_at`,
		link.TagID,
		link.TypeID,
		link.Lot,
		nullString(link.Note),
	).Scan(&link.ID, &link.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetLink retrieves a link by its ID.
// Returns store.ErrLinkNotFound if the link does not exist.
func (s *Store) GetLink(ctx context.Context, id int64) (*domain.Link, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = $1`, id)

	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLot changes the lot value of an existing link in place. A change
// that collides with an existing (tag, type, lot) triple returns
// store.ErrDuplicate.
func (s *Store) UpdateLot(ctx context.Context, id int64, newLot string) (*domain.Link, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE links SET lot = $1 WHERE id = $2
		RETURNING `+linkColumns, newLot, id)

	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrLinkNotFound
	}
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLink removes exactly one row.
// Returns store.ErrLinkNotFound if the link does not exist.
func (s *Store) DeleteLink(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrLinkNotFound
	}
	return nil
}

// CountLinks returns the total number of stored links.
func (s *Store) CountLinks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&count)
	return count, err
}

// MatchLinks returns link rows matching the query joined with their type
// name, ordered by creation time then ID, capped at limit rows. The second
// return value is the true pre-cap match count.
func (s *Store) MatchLinks(ctx context.Context, query string, limit int) ([]store.LinkRow, int, error) {
	var (
		where string
		args  []any
	)
	if query != domain.WildcardQuery {
		pattern := likePattern(query)
		where = ` WHERE (l.lot ILIKE $1 ESCAPE '\'
			OR l.tag_id IN (SELECT id FROM tag_refs WHERE number ILIKE $1 ESCAPE '\'))`
		args = []any{pattern}
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM links l` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	limitPlaceholder := fmt.Sprintf("$%d", len(args)+1)
	selectQuery := `
		SELECT l.id, l.tag_id, l.type_id, l.lot, COALESCE(l.note, ''), l.created_at, t.name
		FROM links l
		JOIN link_types t ON t.id = l.type_id` + where + `
		ORDER BY l.created_at ASC, l.id ASC
		LIMIT ` + limitPlaceholder
	rows, err := s.db.QueryContext(ctx, selectQuery, append(args, limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("select matches: %w", err)
	}
	defer rows.Close()

	var result []store.LinkRow
	for rows.Next() {
		var r store.LinkRow
		err := rows.Scan(
			&r.Link.ID,
			&r.Link.TagID,
			&r.Link.TypeID,
			&r.Link.Lot,
			&r.Link.Note,
			&r.Link.CreatedAt,
			&r.TypeName,
		)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}
