package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
)

// linkColumns is the ordered list of columns selected in link queries.
// Must match the scan order in scanLink.
const linkColumns = `id, tag_id, type_id, lot, COALESCE(note, ''), created_at`

// scanLink scans a sql.Row (or sql.Rows via its Scan method) into a domain.Link.
func scanLink(scanner interface{ Scan(dest ...any) error }) (*domain.Link, error) {
	var l domain.Link
	var createdAt string

	err := scanner.Scan(
		&l.ID,
		&l.TagID,
		&l.TypeID,
		&l.Lot,
		&l.Note,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// InsertLink inserts a link unless the (tag, type, lot) triple already
// exists. The uniqueness check happens inside the INSERT itself, so two
// concurrent identical inserts resolve to exactly one stored row.
// Reports whether a new row was created.
func (s *Store) InsertLink(ctx context.Context, link *domain.Link) (bool, error) {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO links (tag_id, type_id, lot, note, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tag_id, type_id, lot) DO NOTHING`,
		link.TagID,
		link.TypeID,
		link.Lot,
		nullString(link.Note),
		formatTime(now),
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Triple already present: absorbed silently.
		return false, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}

	link.ID = id
	link.CreatedAt = now
	return true, nil
}

// GetLink retrieves a link by its ID.
// Returns store.ErrLinkNotFound if the link does not exist.
func (s *Store) GetLink(ctx context.Context, id int64) (*domain.Link, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = ?`, id)

	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLot changes the lot value of an existing link in place. The UNIQUE
// index guards the new value: an update that would produce a duplicate
// (tag, type, lot) triple fails with store.ErrDuplicate.
func (s *Store) UpdateLot(ctx context.Context, id int64, newLot string) (*domain.Link, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE links SET lot = ? WHERE id = ?`, newLot, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicate
		}
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrLinkNotFound
	}

	return s.GetLink(ctx, id)
}

// DeleteLink removes exactly one row.
// Returns store.ErrLinkNotFound if the link does not exist.
func (s *Store) DeleteLink(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
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
//
// The wildcard "*" matches every link. Any other query is a case-insensitive
// substring match against the lot value and the cached tag number.
func (s *Store) MatchLinks(ctx context.Context, query string, limit int) ([]store.LinkRow, int, error) {
	var (
		where string
		args  []any
	)
	if query != domain.WildcardQuery {
		pattern := likePattern(query)
		where = ` WHERE (LOWER(l.lot) LIKE LOWER(?) ESCAPE '\'
			OR l.tag_id IN (SELECT id FROM tag_refs WHERE LOWER(number) LIKE LOWER(?) ESCAPE '\'))`
		args = []any{pattern, pattern}
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM links l` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count matches: %w", err)
	}

	selectQuery := `
		SELECT l.id, l.tag_id, l.type_id, l.lot, COALESCE(l.note, ''), l.created_at, t.name
		FROM links l
		JOIN link_types t ON t.id = l.type_id` + where + `
		ORDER BY l.created_at ASC, l.id ASC
		LIMIT ?`
	rows, err := s.db.QueryContext(ctx, selectQuery, append(args, limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("select matches: %w", err)
	}
	defer rows.Close()

	var result []store.LinkRow
	for rows.Next() {
		var (
			r         store.LinkRow
			createdAt string
		)
		err := rows.Scan(
			&r.Link.ID,
			&r.Link.TagID,
			&r.Link.TypeID,
			&r.Link.Lot,
			&r.Link.Note,
			&createdAt,
			&r.TypeName,
		)
		if err != nil {
			return nil, 0, err
		}
		r.Link.CreatedAt, err = parseTime(createdAt)
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
