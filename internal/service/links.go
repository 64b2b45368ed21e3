package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shosa/coregre-tracking/internal/catalog"
	"github.com/shosa/coregre-tracking/internal/domain"
	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
	"github.com/shosa/coregre-tracking/internal/metrics"
	"github.com/shosa/coregre-tracking/internal/store"
	"github.com/shosa/coregre-tracking/internal/validation"
)

// LinkService materializes, mutates, and deletes tag/lot associations.
type LinkService struct {
	store     store.Store
	catalog   catalog.Catalog
	metrics   *metrics.Metrics
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(store store.Store, catalog catalog.Catalog, metrics *metrics.Metrics, logger *slog.Logger) *LinkService {
	return &LinkService{
		store:     store,
		catalog:   catalog,
		metrics:   metrics,
		validator: validation.New(),
		logger:    logger,
	}
}

// BulkResult reports the outcome of a bulk link creation.
type BulkResult struct {
	// Created counts only newly inserted rows, not attempted pairs.
	Created int `json:"created"`
	// Skipped counts pairs absorbed as pre-existing duplicates.
	Skipped int `json:"skipped"`
}

// SplitLots derives the lot list from free-text input: one lot per line,
// trimmed, blank lines discarded.
func SplitLots(input string) []string {
	var lots []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lots = append(lots, line)
		}
	}
	return lots
}

// CreateLinksRequest contains fields for bulk link creation.
type CreateLinksRequest struct {
	TypeID int64    `json:"type_id" validate:"required,min=1"`
	TagIDs []int64  `json:"tag_ids" validate:"required,min=1,dive,min=1"`
	Lots   []string `json:"lots" validate:"required,min=1,dive,required"`
	Note   string   `json:"note" validate:"max=500"`
}

// CreateLinks inserts the cross product of tag IDs and lots under the given
// type. Pairs that already exist are skipped silently; a storage fault on
// one pair does not stop the rest of the batch.
func (s *LinkService) CreateLinks(ctx context.Context, req CreateLinksRequest) (BulkResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return BulkResult{}, err
	}

	if _, err := s.store.GetType(ctx, req.TypeID); err != nil {
		if errors.Is(err, store.ErrTypeNotFound) {
			return BulkResult{}, domainerrors.NotFoundf("type %d not found", req.TypeID)
		}
		return BulkResult{}, domainerrors.Internal("load type").WithCause(err)
	}

	var result BulkResult
	var faults int
	for _, tagID := range req.TagIDs {
		for _, lot := range req.Lots {
			link := &domain.Link{
				TagID:  tagID,
				TypeID: req.TypeID,
				Lot:    lot,
				Note:   strings.TrimSpace(req.Note),
			}
			created, err := s.store.InsertLink(ctx, link)
			if err != nil {
				// Per-row fault: skip this pair, keep going.
				faults++
				s.logger.Warn("link insert failed",
					"tag_id", tagID,
					"type_id", req.TypeID,
					"lot", lot,
					"error", err,
				)
				continue
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}
		}
	}

	s.metrics.LinksCreated.Add(float64(result.Created))
	s.metrics.LinksSkipped.Add(float64(result.Skipped))

	s.logger.Info("bulk link creation",
		"type_id", req.TypeID,
		"tags", len(req.TagIDs),
		"lots", len(req.Lots),
		"created", result.Created,
		"skipped", result.Skipped,
		"faults", faults,
	)

	// Refresh the tag snapshot so tree display and number matching see
	// current attributes. Best effort: the links themselves are already
	// persisted.
	s.refreshTagRefs(ctx, req.TagIDs)

	return result, nil
}

// refreshTagRefs pulls current attributes for the given tags from the
// catalog and stores them as the read-side snapshot.
func (s *LinkService) refreshTagRefs(ctx context.Context, tagIDs []int64) {
	tags, err := s.catalog.ResolveTags(ctx, tagIDs)
	if err != nil {
		s.logger.Warn("tag snapshot refresh failed", "error", err)
		return
	}
	if err := s.store.UpsertTagRefs(ctx, tags); err != nil {
		s.logger.Warn("tag snapshot store failed", "error", err)
	}
}

// UpdateLot changes the lot value of an existing link. A new value that
// would collide with another (tag, type, lot) triple is rejected.
func (s *LinkService) UpdateLot(ctx context.Context, linkID int64, newLot string) (*domain.Link, error) {
	newLot = strings.TrimSpace(newLot)
	if newLot == "" {
		return nil, domainerrors.Validation("lot must not be empty")
	}

	link, err := s.store.UpdateLot(ctx, linkID, newLot)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrLinkNotFound):
			return nil, domainerrors.NotFoundf("link %d not found", linkID)
		case errors.Is(err, store.ErrDuplicate):
			return nil, domainerrors.Conflict("an identical association already exists")
		default:
			return nil, domainerrors.Internal("update lot").WithCause(err)
		}
	}

	s.logger.Info("lot updated", "link_id", linkID, "lot", newLot)
	return link, nil
}

// DeleteLink removes exactly one link row.
func (s *LinkService) DeleteLink(ctx context.Context, linkID int64) error {
	if err := s.store.DeleteLink(ctx, linkID); err != nil {
		if errors.Is(err, store.ErrLinkNotFound) {
			return domainerrors.NotFoundf("link %d not found", linkID)
		}
		return domainerrors.Internal("delete link").WithCause(err)
	}

	s.metrics.LinksDeleted.Inc()
	s.logger.Info("link deleted", "link_id", linkID)
	return nil
}

// CheckTag validates a single raw identifier against the catalog. Absence
// is a valid=false answer, never an error.
func (s *LinkService) CheckTag(ctx context.Context, raw string) (catalog.CheckResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return catalog.CheckResult{}, domainerrors.Validation("tag value must not be empty")
	}

	result, err := s.catalog.CheckTag(ctx, raw)
	if err != nil {
		s.metrics.TagChecks.WithLabelValues("error").Inc()
		return catalog.CheckResult{}, err
	}

	if result.Valid {
		s.metrics.TagChecks.WithLabelValues("valid").Inc()
	} else {
		s.metrics.TagChecks.WithLabelValues("invalid").Inc()
	}
	return result, nil
}
