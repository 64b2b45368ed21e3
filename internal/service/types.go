// Package service implements the tracking core's business operations on top
// of the persistence and catalog boundaries.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shosa/coregre-tracking/internal/domain"
	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
	"github.com/shosa/coregre-tracking/internal/store"
)

// TypeService manages the registry of relationship types.
type TypeService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTypeService creates a new type service.
func NewTypeService(store store.Store, logger *slog.Logger) *TypeService {
	return &TypeService{store: store, logger: logger}
}

// ListTypes returns all types in insertion order.
func (s *TypeService) ListTypes(ctx context.Context) ([]*domain.LinkType, error) {
	return s.store.ListTypes(ctx)
}

// CreateType registers a new relationship type. The name must be non-blank;
// duplicate names are allowed.
func (s *TypeService) CreateType(ctx context.Context, name, note string) (*domain.LinkType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("type name must not be empty")
	}

	t := &domain.LinkType{
		Name: name,
		Note: strings.TrimSpace(note),
	}
	if err := s.store.CreateType(ctx, t); err != nil {
		return nil, domainerrors.Internal("create type").WithCause(err)
	}

	s.logger.Info("type created", "type_id", t.ID, "name", t.Name)
	return t, nil
}
