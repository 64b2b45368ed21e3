package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shosa/coregre-tracking/internal/domain"
)

func (s *Server) registerTreeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "buildTree",
		Method:      http.MethodGet,
		Path:        "/api/v1/tracking/tree",
		Summary:     "Build link tree",
		Description: "Returns links matching the query grouped as tag > type > lots; use q=* for everything",
		Tags:        []string{"Tree"},
	}, s.handleBuildTree)
}

// === DTOs ===

// BuildTreeInput contains parameters for tree assembly.
type BuildTreeInput struct {
	Query    string `query:"q" required:"true" doc:"Free-text query: * for everything, otherwise substring match on lot and tag number"`
	Page     int    `query:"page" minimum:"0" doc:"1-based page over top-level tag groups"`
	PageSize int    `query:"page_size" minimum:"0" maximum:"500" doc:"Tag groups per page"`
}

// TreeResponse contains the assembled hierarchy.
type TreeResponse struct {
	Groups     []domain.TagGroup `json:"groups" doc:"Top-level tag groups"`
	Total      int               `json:"total" doc:"Total matching link rows before the cap"`
	TotalPages int               `json:"total_pages" doc:"Pages over tag groups"`
	Truncated  bool              `json:"truncated" doc:"Whether the match set exceeded the row cap"`
}

// TreeOutput wraps the tree response for Huma.
type TreeOutput struct {
	Body TreeResponse
}

func (s *Server) handleBuildTree(ctx context.Context, input *BuildTreeInput) (*TreeOutput, error) {
	tree, err := s.services.Tree.BuildTree(ctx, input.Query, input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}

	return &TreeOutput{
		Body: TreeResponse{
			Groups:     tree.Groups,
			Total:      tree.Total,
			TotalPages: tree.TotalPages,
			Truncated:  tree.Truncated,
		},
	}, nil
}
