package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shosa/coregre-tracking/internal/domain"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchTags",
		Method:      http.MethodPost,
		Path:        "/api/v1/tracking/search",
		Summary:     "Search tags",
		Description: "Resolves a multi-criteria tag search against the catalog; at least one filter must be set",
		Tags:        []string{"Search"},
	}, s.handleSearchTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "checkTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tracking/tags/check",
		Summary:     "Check tag",
		Description: "Validates a single raw tag identifier; absence is reported as valid=false, not an error",
		Tags:        []string{"Search"},
	}, s.handleCheckTag)
}

// === DTOs ===

// SearchRequest is the request body for a multi-criteria tag search.
// Filters combine with logical AND; each is a case-insensitive partial match.
type SearchRequest struct {
	Number      string `json:"number,omitempty" doc:"Tag number filter"`
	Commessa    string `json:"commessa,omitempty" doc:"Commessa filter"`
	Article     string `json:"article,omitempty" doc:"Article code filter"`
	Description string `json:"description,omitempty" doc:"Article description filter"`
	Line        string `json:"line,omitempty" doc:"Production line filter"`
	Client      string `json:"client,omitempty" doc:"Client name filter"`
	OrderNumber string `json:"order_number,omitempty" doc:"Order number filter"`
	Page        int    `json:"page,omitempty" minimum:"0" doc:"1-based page number"`
	PageSize    int    `json:"page_size,omitempty" minimum:"0" maximum:"500" doc:"Results per page"`
}

// SearchInput wraps the search request for Huma.
type SearchInput struct {
	Body SearchRequest
}

// ArticleGroupResponse clusters matching tags under one article code.
type ArticleGroupResponse struct {
	Article     string       `json:"article" doc:"Article code"`
	Description string       `json:"description,omitempty" doc:"Article description"`
	Tags        []domain.Tag `json:"tags" doc:"Tags for this article"`
}

// SearchResponse contains one page of search results.
type SearchResponse struct {
	Groups     []ArticleGroupResponse `json:"groups" doc:"Results grouped by article"`
	Items      []domain.Tag           `json:"items" doc:"Flat result page"`
	Total      int                    `json:"total" doc:"Total matching tags"`
	TotalPages int                    `json:"totalPages" doc:"Total pages"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// CheckTagInput contains parameters for a single-tag validity check.
type CheckTagInput struct {
	Value string `query:"value" required:"true" doc:"Raw tag identifier"`
}

// CheckTagResponse reports whether a raw identifier names an existing tag.
type CheckTagResponse struct {
	Valid bool        `json:"valid" doc:"Whether the identifier names an existing tag"`
	Tag   *domain.Tag `json:"tag,omitempty" doc:"The resolved tag, when valid"`
}

// CheckTagOutput wraps the check response for Huma.
type CheckTagOutput struct {
	Body CheckTagResponse
}

func (s *Server) handleSearchTags(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	filters := domain.SearchFilters{
		Number:      input.Body.Number,
		Commessa:    input.Body.Commessa,
		Article:     input.Body.Article,
		Description: input.Body.Description,
		Line:        input.Body.Line,
		Client:      input.Body.Client,
		OrderNumber: input.Body.OrderNumber,
	}

	result, err := s.services.Search.SearchTags(ctx, filters, input.Body.Page, input.Body.PageSize)
	if err != nil {
		return nil, err
	}

	groups := make([]ArticleGroupResponse, len(result.Groups))
	for i, g := range result.Groups {
		groups[i] = ArticleGroupResponse{
			Article:     g.Article,
			Description: g.Description,
			Tags:        g.Tags,
		}
	}

	return &SearchOutput{
		Body: SearchResponse{
			Groups:     groups,
			Items:      result.Items,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

func (s *Server) handleCheckTag(ctx context.Context, input *CheckTagInput) (*CheckTagOutput, error) {
	result, err := s.services.Links.CheckTag(ctx, input.Value)
	if err != nil {
		return nil, err
	}

	return &CheckTagOutput{
		Body: CheckTagResponse{
			Valid: result.Valid,
			Tag:   result.Tag,
		},
	}, nil
}
