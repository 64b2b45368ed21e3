// Package catalog consumes the factory tag/work-order catalog. Tags are
// owned by the catalog service; this package only reads them.
package catalog

import (
	"context"

	"github.com/shosa/coregre-tracking/internal/domain"
)

// CheckResult reports whether a raw tag identifier names an existing tag.
// Absence is not an error: Valid is false and Tag is nil.
type CheckResult struct {
	Valid bool        `json:"valid"`
	Tag   *domain.Tag `json:"tag,omitempty"`
}

// TagPage is one page of a multi-criteria tag search.
type TagPage struct {
	Items      []domain.Tag `json:"items"`
	Total      int          `json:"total"`
	TotalPages int          `json:"totalPages"`
}

// Catalog is the tag lookup collaborator.
type Catalog interface {
	// CheckTag resolves a single raw identifier. A missing tag yields
	// CheckResult{Valid: false}, not an error.
	CheckTag(ctx context.Context, raw string) (CheckResult, error)

	// SearchTags resolves the filter set, AND-combined, case-insensitive
	// partial match per field. At least one filter must be set; the caller
	// validates that before calling.
	SearchTags(ctx context.Context, filters domain.SearchFilters, page, pageSize int) (TagPage, error)

	// ResolveTags fetches descriptive attributes for a set of tag IDs.
	// Unknown IDs are absent from the result, not errors.
	ResolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error)
}
