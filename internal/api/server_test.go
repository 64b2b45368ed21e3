package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/shosa/coregre-tracking/internal/catalog"
	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/metrics"
	"github.com/shosa/coregre-tracking/internal/service"
	"github.com/shosa/coregre-tracking/internal/store"
	"github.com/shosa/coregre-tracking/internal/store/sqlite"
)

// fakeCatalog serves canned tags keyed by ID and number.
type fakeCatalog struct {
	tags       map[int64]domain.Tag
	searchPage catalog.TagPage
	searchErr  error
}

func newFakeCatalog(tags ...domain.Tag) *fakeCatalog {
	f := &fakeCatalog{tags: make(map[int64]domain.Tag)}
	for _, t := range tags {
		f.tags[t.ID] = t
	}
	return f
}

func (f *fakeCatalog) CheckTag(ctx context.Context, raw string) (catalog.CheckResult, error) {
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
	var tags []domain.Tag
	for _, id := range ids {
		if t, ok := f.tags[id]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

type testServer struct {
	*Server
	api     humatest.TestAPI
	store   store.Store
	catalog *fakeCatalog
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cat := newFakeCatalog(
		domain.Tag{ID: 7, Number: "CRT-0007", Article: "ART-A", Client: "ACME"},
		domain.Tag{ID: 8, Number: "CRT-0008", Article: "ART-A", Client: "ACME"},
	)
	m := metrics.New()

	services := &Services{
		Types:  service.NewTypeService(st, logger),
		Links:  service.NewLinkService(st, cat, m, logger),
		Tree:   service.NewTreeService(st, m, logger, 1000, 100),
		Search: service.NewSearchService(cat, logger, 50),
	}

	s := NewServer(st, services, m, []string{"*"}, logger)

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		store:   st,
		catalog: cat,
	}
}

// listStoredLinks returns every stored link row in creation order.
func listStoredLinks(t *testing.T, ts *testServer) []store.LinkRow {
	t.Helper()
	rows, _, err := ts.store.MatchLinks(context.Background(), domain.WildcardQuery, 1000)
	require.NoError(t, err)
	return rows
}

// createType registers a type through the API and returns its ID.
func (ts *testServer) createType(t *testing.T, name string) int64 {
	t.Helper()
	resp := ts.api.Post("/api/v1/tracking/types", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, "create type failed: %s", resp.Body.String())

	var body TypeResponse
	decodeBody(t, resp.Body.Bytes(), &body)
	return body.ID
}
