package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/shosa/coregre-tracking/internal/domain"
	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
	"github.com/shosa/coregre-tracking/internal/metrics"
	"github.com/shosa/coregre-tracking/internal/store"
)

// TreeService reconstructs the tag -> type -> lots hierarchy from link rows
// matching a free-text query.
type TreeService struct {
	store    store.Store
	metrics  *metrics.Metrics
	logger   *slog.Logger
	rowCap   int
	pageSize int
}

// NewTreeService creates a new tree service. rowCap bounds how many link
// rows one tree assembly may consider; pageSize is the default number of
// top-level tag groups per page.
func NewTreeService(store store.Store, metrics *metrics.Metrics, logger *slog.Logger, rowCap, pageSize int) *TreeService {
	return &TreeService{
		store:    store,
		metrics:  metrics,
		logger:   logger,
		rowCap:   rowCap,
		pageSize: pageSize,
	}
}

// BuildTree retrieves links matching the query and assembles the grouped
// hierarchy. Pagination applies to top-level tag groups; Total reports
// matching link rows before the cap.
func (s *TreeService) BuildTree(ctx context.Context, query string, page, pageSize int) (*domain.Tree, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("query must not be empty")
	}
	page, pageSize = store.NormalizePage(page, pageSize, s.pageSize)

	rows, total, err := s.store.MatchLinks(ctx, query, s.rowCap)
	if err != nil {
		return nil, domainerrors.Internal("match links").WithCause(err)
	}

	groups := groupRows(rows)
	s.attachTagRefs(ctx, groups)

	truncated := total > len(rows)
	start, end := store.PageBounds(page, pageSize, len(groups))

	tree := &domain.Tree{
		Groups:     groups[start:end],
		Total:      total,
		TotalPages: store.TotalPages(len(groups), pageSize),
		Truncated:  truncated,
	}

	s.metrics.TreesBuilt.Inc()
	if truncated {
		s.metrics.TreesTruncated.Inc()
		s.logger.Warn("tree truncated", "query", query, "total", total, "cap", s.rowCap)
	}

	return tree, nil
}

// groupRows folds flat link rows into tag groups. Rows arrive ordered by
// creation time, which fixes the lot order inside each type group; the
// groups themselves are re-sorted by tag ID and type name.
func groupRows(rows []store.LinkRow) []domain.TagGroup {
	byTag := make(map[int64]map[int64]*domain.TypeGroup)
	typeOrder := make(map[int64][]int64)

	for _, r := range rows {
		types, ok := byTag[r.Link.TagID]
		if !ok {
			types = make(map[int64]*domain.TypeGroup)
			byTag[r.Link.TagID] = types
		}

		tg, ok := types[r.Link.TypeID]
		if !ok {
			tg = &domain.TypeGroup{
				TypeID:   r.Link.TypeID,
				TypeName: r.TypeName,
			}
			types[r.Link.TypeID] = tg
			typeOrder[r.Link.TagID] = append(typeOrder[r.Link.TagID], r.Link.TypeID)
		}

		tg.Lots = append(tg.Lots, domain.LotEntry{
			ID:        r.Link.ID,
			Lot:       r.Link.Lot,
			Note:      r.Link.Note,
			CreatedAt: r.Link.CreatedAt,
		})
	}

	tagIDs := make([]int64, 0, len(byTag))
	for tagID := range byTag {
		tagIDs = append(tagIDs, tagID)
	}
	sort.Slice(tagIDs, func(i, j int) bool { return tagIDs[i] < tagIDs[j] })

	groups := make([]domain.TagGroup, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		types := make([]domain.TypeGroup, 0, len(byTag[tagID]))
		for _, typeID := range typeOrder[tagID] {
			types = append(types, *byTag[tagID][typeID])
		}
		sort.Slice(types, func(i, j int) bool { return types[i].TypeName < types[j].TypeName })

		groups = append(groups, domain.TagGroup{
			TagID: tagID,
			Types: types,
		})
	}

	return groups
}

// attachTagRefs decorates groups with the snapshot attributes. Groups whose
// tag was never snapshotted keep a nil Tag.
func (s *TreeService) attachTagRefs(ctx context.Context, groups []domain.TagGroup) {
	if len(groups) == 0 {
		return
	}

	ids := make([]int64, len(groups))
	for i, g := range groups {
		ids[i] = g.TagID
	}

	refs, err := s.store.GetTagRefs(ctx, ids)
	if err != nil {
		s.logger.Warn("tag snapshot lookup failed", "error", err)
		return
	}

	for i := range groups {
		if tag, ok := refs[groups[i].TagID]; ok {
			t := tag
			groups[i].Tag = &t
		}
	}
}
