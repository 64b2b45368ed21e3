// Package store defines the persistence contract for the tracking core and
// the sentinel errors shared by its implementations.
package store

import (
	"context"
	"errors"

	"github.com/shosa/coregre-tracking/internal/domain"
)

// Sentinel errors returned by store implementations.
var (
	ErrNotFound     = errors.New("not found")
	ErrTypeNotFound = errors.New("link type not found")
	ErrLinkNotFound = errors.New("link not found")
	// ErrDuplicate signals a write that would violate the (tag, type, lot)
	// uniqueness invariant. Bulk creation absorbs it; lot updates surface it.
	ErrDuplicate = errors.New("duplicate link")
)

// LinkRow is a link joined with the attributes tree assembly needs.
type LinkRow struct {
	Link     domain.Link
	TypeName string
}

// Store is the persistence boundary of the tracking core.
type Store interface {
	// CreateType persists a new relationship type and fills in its ID and
	// creation timestamp.
	CreateType(ctx context.Context, t *domain.LinkType) error

	// GetType returns a type by ID, or ErrTypeNotFound.
	GetType(ctx context.Context, id int64) (*domain.LinkType, error)

	// ListTypes returns all types in insertion order.
	ListTypes(ctx context.Context) ([]*domain.LinkType, error)

	// InsertLink atomically inserts a link unless the (tag, type, lot)
	// triple already exists. It reports whether a row was created; a
	// duplicate is a no-op, not an error. On creation the link's ID and
	// CreatedAt are filled in.
	InsertLink(ctx context.Context, link *domain.Link) (bool, error)

	// GetLink returns a link by ID, or ErrLinkNotFound.
	GetLink(ctx context.Context, id int64) (*domain.Link, error)

	// UpdateLot changes the lot value of an existing link in place.
	// Returns ErrLinkNotFound for an unknown ID and ErrDuplicate when the
	// new value would collide with another (tag, type, lot) triple.
	UpdateLot(ctx context.Context, id int64, newLot string) (*domain.Link, error)

	// DeleteLink removes exactly one row, or returns ErrLinkNotFound.
	DeleteLink(ctx context.Context, id int64) error

	// CountLinks returns the total number of stored links.
	CountLinks(ctx context.Context) (int, error)

	// MatchLinks returns link rows matching the query ordered by creation
	// time then ID, capped at limit rows, along with the true pre-cap match
	// count. The wildcard query matches everything; any other value is a
	// case-insensitive substring match on the lot and on the snapshot tag
	// number.
	MatchLinks(ctx context.Context, query string, limit int) ([]LinkRow, int, error)

	// UpsertTagRefs refreshes the read-side snapshot of external tag
	// attributes used for tree display and number matching.
	UpsertTagRefs(ctx context.Context, tags []domain.Tag) error

	// GetTagRefs returns the cached snapshots for the given tag IDs.
	// Missing IDs are simply absent from the result.
	GetTagRefs(ctx context.Context, ids []int64) (map[int64]domain.Tag, error)

	// Close releases the underlying database handle.
	Close() error
}
