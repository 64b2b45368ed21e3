package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shosa/coregre-tracking/internal/domain"
	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := NewClient(srv.URL, logger, WithCheckRate(1000, 1000))
	t.Cleanup(c.Close)
	return c
}

func TestCheckTag_Valid(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tags/check" {
			t.Errorf("path: got %q, want /tags/check", r.URL.Path)
		}
		if got := r.URL.Query().Get("number"); got != "CRT-2024-0099" {
			t.Errorf("number: got %q", got)
		}
		json.NewEncoder(w).Encode(CheckResult{
			Valid: true,
			Tag:   &domain.Tag{ID: 7, Number: "CRT-2024-0099", Article: "ART-A"},
		})
	}))

	result, err := c.CheckTag(context.Background(), "CRT-2024-0099")
	if err != nil {
		t.Fatalf("CheckTag: %v", err)
	}
	if !result.Valid {
		t.Error("Valid: got false, want true")
	}
	if result.Tag == nil || result.Tag.ID != 7 {
		t.Errorf("Tag: got %+v", result.Tag)
	}
}

func TestCheckTag_NotFoundIsNotAnError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	result, err := c.CheckTag(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("CheckTag: %v", err)
	}
	if result.Valid {
		t.Error("Valid: got true, want false")
	}
	if result.Tag != nil {
		t.Errorf("Tag: got %+v, want nil", result.Tag)
	}
}

func TestCheckTag_ServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.CheckTag(context.Background(), "CRT-0001")
	if !errors.Is(err, domainerrors.ErrUnavailable) {
		t.Errorf("CheckTag: got %v, want unavailable", err)
	}
}

func TestCheckTag_Unreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := NewClient("http://127.0.0.1:1", logger, WithCheckRate(1000, 1000))
	t.Cleanup(c.Close)

	_, err := c.CheckTag(context.Background(), "CRT-0001")
	if !errors.Is(err, domainerrors.ErrUnavailable) {
		t.Errorf("CheckTag: got %v, want unavailable", err)
	}
}

func TestSearchTags(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tags/search" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Client != "ACME" || req.Page != 2 || req.PageSize != 50 {
			t.Errorf("request: got %+v", req)
		}

		json.NewEncoder(w).Encode(TagPage{
			Items:      []domain.Tag{{ID: 1, Number: "CRT-0001", Client: "ACME"}},
			Total:      51,
			TotalPages: 2,
		})
	}))

	page, err := c.SearchTags(context.Background(), domain.SearchFilters{Client: "ACME"}, 2, 50)
	if err != nil {
		t.Fatalf("SearchTags: %v", err)
	}
	if page.Total != 51 || page.TotalPages != 2 {
		t.Errorf("page: got total=%d totalPages=%d", page.Total, page.TotalPages)
	}
	if len(page.Items) != 1 || page.Items[0].Number != "CRT-0001" {
		t.Errorf("items: got %+v", page.Items)
	}
}

func TestSearchTags_EmptyItemsNotNil(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(TagPage{Total: 0})
	}))

	page, err := c.SearchTags(context.Background(), domain.SearchFilters{Client: "NOBODY"}, 1, 50)
	if err != nil {
		t.Fatalf("SearchTags: %v", err)
	}
	if page.Items == nil {
		t.Error("Items: got nil, want empty slice")
	}
}

func TestResolveTags(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "7,8" {
			t.Errorf("ids: got %q, want %q", got, "7,8")
		}
		json.NewEncoder(w).Encode([]domain.Tag{
			{ID: 7, Number: "CRT-0007"},
			{ID: 8, Number: "CRT-0008"},
		})
	}))

	tags, err := c.ResolveTags(context.Background(), []int64{7, 8})
	if err != nil {
		t.Fatalf("ResolveTags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("tags: got %d, want 2", len(tags))
	}
}

func TestResolveTags_EmptyInput(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty ID set")
	}))

	tags, err := c.ResolveTags(context.Background(), nil)
	if err != nil {
		t.Fatalf("ResolveTags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags: got %d, want 0", len(tags))
	}
}
