package service

import (
	"context"
	"log/slog"

	"github.com/shosa/coregre-tracking/internal/catalog"
	"github.com/shosa/coregre-tracking/internal/domain"
	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
	"github.com/shosa/coregre-tracking/internal/store"
)

// SearchService resolves multi-criteria tag searches through the catalog
// and regroups results for display.
type SearchService struct {
	catalog  catalog.Catalog
	logger   *slog.Logger
	pageSize int
}

// NewSearchService creates a new search service. pageSize is the default
// page size when the caller does not supply one.
func NewSearchService(catalog catalog.Catalog, logger *slog.Logger, pageSize int) *SearchService {
	return &SearchService{catalog: catalog, logger: logger, pageSize: pageSize}
}

// SearchResult is a page of matching tags grouped by article.
type SearchResult struct {
	Groups     []domain.ArticleGroup `json:"groups"`
	Items      []domain.Tag          `json:"items"`
	Total      int                   `json:"total"`
	TotalPages int                   `json:"totalPages"`
}

// SearchTags validates the filter set then delegates to the catalog.
// All seven filters combine with AND; at least one must be set.
func (s *SearchService) SearchTags(ctx context.Context, filters domain.SearchFilters, page, pageSize int) (*SearchResult, error) {
	if filters.IsEmpty() {
		return nil, domainerrors.Validation("at least one search criterion required")
	}
	page, pageSize = store.NormalizePage(page, pageSize, s.pageSize)

	tagPage, err := s.catalog.SearchTags(ctx, filters, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Groups:     groupByArticle(tagPage.Items),
		Items:      tagPage.Items,
		Total:      tagPage.Total,
		TotalPages: tagPage.TotalPages,
	}, nil
}

// groupByArticle clusters a page of tags by article code, preserving the
// catalog's result order both across and inside groups.
func groupByArticle(tags []domain.Tag) []domain.ArticleGroup {
	index := make(map[string]int)
	groups := make([]domain.ArticleGroup, 0)

	for _, t := range tags {
		i, ok := index[t.Article]
		if !ok {
			i = len(groups)
			index[t.Article] = i
			groups = append(groups, domain.ArticleGroup{
				Article:     t.Article,
				Description: t.Description,
			})
		}
		groups[i].Tags = append(groups[i].Tags, t)
	}

	return groups
}
