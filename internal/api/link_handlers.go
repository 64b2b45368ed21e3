package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/service"
)

func (s *Server) registerLinkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createLinks",
		Method:        http.MethodPost,
		Path:          "/api/v1/tracking/links",
		Summary:       "Create links in bulk",
		Description:   "Materializes the cross product of tags and lots under a type; existing combinations are skipped silently",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateLinks)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateLot",
		Method:      http.MethodPut,
		Path:        "/api/v1/tracking/links/{id}",
		Summary:     "Update a link's lot",
		Description: "Changes the lot value of an existing link in place",
		Tags:        []string{"Links"},
	}, s.handleUpdateLot)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteLink",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tracking/links/{id}",
		Summary:       "Delete a link",
		Description:   "Removes exactly one link row",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteLink)
}

// === DTOs ===

// CreateLinksRequest is the request body for bulk link creation. Lots may
// arrive either as a list or as free text with one lot per line.
type CreateLinksRequest struct {
	TypeID   int64   `json:"type_id" minimum:"1" doc:"Relationship type ID"`
	TagIDs   []int64 `json:"tag_ids" doc:"Tag IDs to associate"`
	Lots     []string `json:"lots,omitempty" doc:"Lot values"`
	LotsText string  `json:"lots_text,omitempty" doc:"Free-text lots, one per line; used when lots is empty"`
	Note     string  `json:"note,omitempty" maxLength:"500" doc:"Note applied to every created link"`
}

// CreateLinksInput wraps the bulk creation request for Huma.
type CreateLinksInput struct {
	Body CreateLinksRequest
}

// CreateLinksResponse reports the outcome of a bulk creation.
type CreateLinksResponse struct {
	Created int `json:"created" doc:"Newly inserted rows"`
	Skipped int `json:"skipped" doc:"Pairs absorbed as pre-existing duplicates"`
}

// CreateLinksOutput wraps the bulk creation response for Huma.
type CreateLinksOutput struct {
	Body CreateLinksResponse
}

// LinkResponse contains link data in API responses.
type LinkResponse struct {
	ID        int64     `json:"id" doc:"Link ID"`
	TagID     int64     `json:"tag_id" doc:"Tag ID"`
	TypeID    int64     `json:"type_id" doc:"Relationship type ID"`
	Lot       string    `json:"lot" doc:"Lot value"`
	Note      string    `json:"note,omitempty" doc:"Free-form note"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// UpdateLotRequest is the request body for a lot update.
type UpdateLotRequest struct {
	Lot string `json:"lot" minLength:"1" maxLength:"200" doc:"New lot value"`
}

// UpdateLotInput wraps the lot update request for Huma.
type UpdateLotInput struct {
	ID   int64 `path:"id" doc:"Link ID"`
	Body UpdateLotRequest
}

// LinkOutput wraps a single link response for Huma.
type LinkOutput struct {
	Body LinkResponse
}

// DeleteLinkInput contains parameters for deleting a link.
type DeleteLinkInput struct {
	ID int64 `path:"id" doc:"Link ID"`
}

func toLinkResponse(l *domain.Link) LinkResponse {
	return LinkResponse{
		ID:        l.ID,
		TagID:     l.TagID,
		TypeID:    l.TypeID,
		Lot:       l.Lot,
		Note:      l.Note,
		CreatedAt: l.CreatedAt,
	}
}

func (s *Server) handleCreateLinks(ctx context.Context, input *CreateLinksInput) (*CreateLinksOutput, error) {
	lots := input.Body.Lots
	if len(lots) == 0 {
		lots = service.SplitLots(input.Body.LotsText)
	}

	result, err := s.services.Links.CreateLinks(ctx, service.CreateLinksRequest{
		TypeID: input.Body.TypeID,
		TagIDs: input.Body.TagIDs,
		Lots:   lots,
		Note:   input.Body.Note,
	})
	if err != nil {
		return nil, err
	}

	return &CreateLinksOutput{
		Body: CreateLinksResponse{
			Created: result.Created,
			Skipped: result.Skipped,
		},
	}, nil
}

func (s *Server) handleUpdateLot(ctx context.Context, input *UpdateLotInput) (*LinkOutput, error) {
	link, err := s.services.Links.UpdateLot(ctx, input.ID, input.Body.Lot)
	if err != nil {
		return nil, err
	}
	return &LinkOutput{Body: toLinkResponse(link)}, nil
}

func (s *Server) handleDeleteLink(ctx context.Context, input *DeleteLinkInput) (*struct{}, error) {
	if err := s.services.Links.DeleteLink(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
