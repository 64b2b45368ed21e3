package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
)

// newTestStore connects to the database named by TRACKING_TEST_POSTGRES_DSN,
// skipping the test when the variable is unset. Tables are truncated so each
// test starts clean.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("TRACKING_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TRACKING_TEST_POSTGRES_DSN not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s, err := Open(context.Background(), dsn, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	_, err = s.db.Exec(`TRUNCATE links, link_types, tag_refs RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return s
}

func TestInsertLink_Roundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lt := &domain.LinkType{Name: "SPEDIZIONE"}
	if err := s.CreateType(ctx, lt); err != nil {
		t.Fatalf("CreateType: %v", err)
	}

	link := &domain.Link{TagID: 42, TypeID: lt.ID, Lot: "LOT-001"}
	created, err := s.InsertLink(ctx, link)
	if err != nil {
		t.Fatalf("InsertLink: %v", err)
	}
	if !created || link.ID == 0 {
		t.Fatalf("InsertLink: created=%v, id=%d", created, link.ID)
	}

	// Same triple again is absorbed.
	created, err = s.InsertLink(ctx, &domain.Link{TagID: 42, TypeID: lt.ID, Lot: "LOT-001"})
	if err != nil {
		t.Fatalf("second InsertLink: %v", err)
	}
	if created {
		t.Error("second InsertLink: got created=true, want false")
	}

	got, err := s.GetLink(ctx, link.ID)
	if err != nil {
		t.Fatalf("GetLink: %v", err)
	}
	if got.Lot != "LOT-001" || got.TagID != 42 {
		t.Errorf("GetLink: got %+v", got)
	}
}

func TestUpdateLot_ConflictAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lt := &domain.LinkType{Name: "SPEDIZIONE"}
	if err := s.CreateType(ctx, lt); err != nil {
		t.Fatalf("CreateType: %v", err)
	}

	first := &domain.Link{TagID: 1, TypeID: lt.ID, Lot: "LOT-A"}
	second := &domain.Link{TagID: 1, TypeID: lt.ID, Lot: "LOT-B"}
	for _, l := range []*domain.Link{first, second} {
		if _, err := s.InsertLink(ctx, l); err != nil {
			t.Fatalf("InsertLink: %v", err)
		}
	}

	if _, err := s.UpdateLot(ctx, second.ID, "LOT-A"); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("UpdateLot: got %v, want store.ErrDuplicate", err)
	}

	got, err := s.UpdateLot(ctx, second.ID, "LOT-C")
	if err != nil {
		t.Fatalf("UpdateLot: %v", err)
	}
	if got.Lot != "LOT-C" {
		t.Errorf("Lot: got %q, want %q", got.Lot, "LOT-C")
	}

	if err := s.DeleteLink(ctx, second.ID); err != nil {
		t.Fatalf("DeleteLink: %v", err)
	}
	if err := s.DeleteLink(ctx, second.ID); !errors.Is(err, store.ErrLinkNotFound) {
		t.Errorf("second DeleteLink: got %v, want store.ErrLinkNotFound", err)
	}
}

func TestMatchLinks_TagRefs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lt := &domain.LinkType{Name: "SPEDIZIONE"}
	if err := s.CreateType(ctx, lt); err != nil {
		t.Fatalf("CreateType: %v", err)
	}
	if _, err := s.InsertLink(ctx, &domain.Link{TagID: 7, TypeID: lt.ID, Lot: "LOT-001"}); err != nil {
		t.Fatalf("InsertLink: %v", err)
	}
	if err := s.UpsertTagRefs(ctx, []domain.Tag{{ID: 7, Number: "CRT-2024-0099"}}); err != nil {
		t.Fatalf("UpsertTagRefs: %v", err)
	}

	rows, total, err := s.MatchLinks(ctx, "crt-2024", 100)
	if err != nil {
		t.Fatalf("MatchLinks: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("MatchLinks: total=%d rows=%d, want 1/1", total, len(rows))
	}
	if rows[0].TypeName != "SPEDIZIONE" {
		t.Errorf("TypeName: got %q, want %q", rows[0].TypeName, "SPEDIZIONE")
	}
}
