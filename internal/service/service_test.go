package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shosa/coregre-tracking/internal/catalog"
	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/store"
	"github.com/shosa/coregre-tracking/internal/store/sqlite"
)

// fakeCatalog serves canned tags keyed by ID and number.
type fakeCatalog struct {
	tags       map[int64]domain.Tag
	searchPage catalog.TagPage
	searchErr  error
	checkErr   error
	resolveErr error
}

func newFakeCatalog(tags ...domain.Tag) *fakeCatalog {
	f := &fakeCatalog{tags: make(map[int64]domain.Tag)}
	for _, t := range tags {
		f.tags[t.ID] = t
	}
	return f
}

func (f *fakeCatalog) CheckTag(ctx context.Context, raw string) (catalog.CheckResult, error) {
	if f.checkErr != nil {
		return catalog.CheckResult{}, f.checkErr
	}
	for _, t := range f.tags {
		if t.Number == raw {
			tag := t
			return catalog.CheckResult{Valid: true, Tag: &tag}, nil
		}
	}
	return catalog.CheckResult{Valid: false}, nil
}

func (f *fakeCatalog) SearchTags(ctx context.Context, filters domain.SearchFilters, page, pageSize int) (catalog.TagPage, error) {
	if f.searchErr != nil {
		return catalog.TagPage{}, f.searchErr
	}
	return f.searchPage, nil
}

func (f *fakeCatalog) ResolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	var tags []domain.Tag
	for _, id := range ids {
		if t, ok := f.tags[id]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestType registers a type and returns its ID.
func createTestType(t *testing.T, s store.Store, name string) int64 {
	t.Helper()
	lt := &domain.LinkType{Name: name}
	require.NoError(t, s.CreateType(context.Background(), lt))
	return lt.ID
}

// listLinks returns every stored link row in creation order.
func listLinks(t *testing.T, s store.Store) []store.LinkRow {
	t.Helper()
	rows, _, err := s.MatchLinks(context.Background(), domain.WildcardQuery, 1000)
	require.NoError(t, err)
	return rows
}
