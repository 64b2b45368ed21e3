package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shosa/coregre-tracking/internal/domain"
)

// UpsertTagRefs refreshes the cached snapshot of external tag attributes.
func (s *Store) UpsertTagRefs(ctx context.Context, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tag_refs (id, number, commessa, article, description, line, client, order_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				number = excluded.number,
				commessa = excluded.commessa,
				article = excluded.article,
				description = excluded.description,
				line = excluded.line,
				client = excluded.client,
				order_number = excluded.order_number`,
			t.ID,
			t.Number,
			nullString(t.Commessa),
			nullString(t.Article),
			nullString(t.Description),
			nullString(t.Line),
			nullString(t.Client),
			nullString(t.OrderNumber),
		)
		if err != nil {
			return fmt.Errorf("upsert tag_ref %d: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTagRefs returns the cached snapshots for the given tag IDs.
// IDs without a snapshot are absent from the result map.
func (s *Store) GetTagRefs(ctx context.Context, ids []int64) (map[int64]domain.Tag, error) {
	result := make(map[int64]domain.Tag, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, COALESCE(commessa, ''), COALESCE(article, ''),
			COALESCE(description, ''), COALESCE(line, ''), COALESCE(client, ''),
			COALESCE(order_number, '')
		FROM tag_refs WHERE id IN (`+strings.Join(placeholders, ",")+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query tag_refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Tag
		err := rows.Scan(
			&t.ID,
			&t.Number,
			&t.Commessa,
			&t.Article,
			&t.Description,
			&t.Line,
			&t.Client,
			&t.OrderNumber,
		)
		if err != nil {
			return nil, err
		}
		result[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
