package domain

import "time"

// Link associates a production tag (cartellino) with a shipment lot under a
// user-defined relationship type. The triple (TagID, TypeID, Lot) is unique;
// a second attempt to create the same triple is absorbed silently.
type Link struct {
	ID        int64     `json:"id"`
	TagID     int64     `json:"tag_id"`
	TypeID    int64     `json:"type_id"`
	Lot       string    `json:"lot"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkType is a user-defined category under which tag/lot associations are
// filed. Types are created on demand and live indefinitely; duplicate names
// are a UX nuisance, not a correctness violation.
type LinkType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
