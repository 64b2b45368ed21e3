package domain

import "time"

// WildcardQuery matches every link in the store, subject to the row cap.
const WildcardQuery = "*"

// LotEntry is one link row as it appears inside the tree.
type LotEntry struct {
	ID        int64     `json:"id"`
	Lot       string    `json:"lot"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TypeGroup holds the lot entries filed under one relationship type for a tag.
// Lots are ordered by creation time ascending.
type TypeGroup struct {
	TypeID   int64      `json:"type_id"`
	TypeName string     `json:"type_name"`
	Lots     []LotEntry `json:"lots"`
}

// TagGroup is one top-level node of the tree: a tag and its links grouped by
// type. Type groups are ordered by type name ascending.
type TagGroup struct {
	TagID int64 `json:"tag_id"`
	// Tag carries the snapshot attributes when available; nil when the
	// snapshot was never captured (links created before the tag cache).
	Tag   *Tag        `json:"tag,omitempty"`
	Types []TypeGroup `json:"types"`
}

// Tree is the tag -> type -> lots hierarchy reconstructed from link rows
// matching a query.
type Tree struct {
	Groups []TagGroup `json:"groups"`
	// Total is the true pre-cap match count of link rows.
	Total int `json:"total"`
	// TotalPages is computed over top-level tag groups, not rows.
	TotalPages int `json:"total_pages"`
	// Truncated reports that the underlying match set exceeded the row cap
	// and only the first cap rows (created_at ascending) were assembled.
	Truncated bool `json:"truncated"`
}
