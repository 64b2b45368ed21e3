package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shosa/coregre-tracking/internal/domain"
)

func (s *Server) registerTypeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTypes",
		Method:      http.MethodGet,
		Path:        "/api/v1/tracking/types",
		Summary:     "List relationship types",
		Description: "Returns all relationship types in insertion order",
		Tags:        []string{"Types"},
	}, s.handleListTypes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createType",
		Method:        http.MethodPost,
		Path:          "/api/v1/tracking/types",
		Summary:       "Create relationship type",
		Description:   "Registers a new relationship type on demand",
		Tags:          []string{"Types"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateType)
}

// === DTOs ===

// TypeResponse contains relationship type data in API responses.
type TypeResponse struct {
	ID        int64     `json:"id" doc:"Type ID"`
	Name      string    `json:"name" doc:"Type name"`
	Note      string    `json:"note,omitempty" doc:"Free-form note"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// ListTypesResponse contains a list of relationship types.
type ListTypesResponse struct {
	Types []TypeResponse `json:"types" doc:"List of types"`
}

// ListTypesOutput wraps the list types response for Huma.
type ListTypesOutput struct {
	Body ListTypesResponse
}

// CreateTypeRequest is the request body for creating a type.
type CreateTypeRequest struct {
	Name string `json:"name" minLength:"1" maxLength:"100" doc:"Type name"`
	Note string `json:"note,omitempty" maxLength:"500" doc:"Free-form note"`
}

// CreateTypeInput wraps the create type request for Huma.
type CreateTypeInput struct {
	Body CreateTypeRequest
}

// TypeOutput wraps a single type response for Huma.
type TypeOutput struct {
	Body TypeResponse
}

func toTypeResponse(t *domain.LinkType) TypeResponse {
	return TypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		Note:      t.Note,
		CreatedAt: t.CreatedAt,
	}
}

func (s *Server) handleListTypes(ctx context.Context, _ *struct{}) (*ListTypesOutput, error) {
	types, err := s.services.Types.ListTypes(ctx)
	if err != nil {
		return nil, err
	}

	resp := ListTypesResponse{Types: make([]TypeResponse, len(types))}
	for i, t := range types {
		resp.Types[i] = toTypeResponse(t)
	}
	return &ListTypesOutput{Body: resp}, nil
}

func (s *Server) handleCreateType(ctx context.Context, input *CreateTypeInput) (*TypeOutput, error) {
	t, err := s.services.Types.CreateType(ctx, input.Body.Name, input.Body.Note)
	if err != nil {
		return nil, err
	}
	return &TypeOutput{Body: toTypeResponse(t)}, nil
}
