package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shosa/coregre-tracking/internal/domain"
	domainerrors "github.com/shosa/coregre-tracking/internal/errors"
	"github.com/shosa/coregre-tracking/internal/ratelimit"
)

const (
	// Tag checks fire once per input slot; keep them from hammering the
	// catalog when an operator pastes a whole grid at once.
	defaultCheckRPS   = 10.0
	defaultCheckBurst = 20

	defaultTimeout = 10 * time.Second
)

// rate-limiter key for the single upstream catalog host.
const limiterKey = "catalog"

// Client is a rate-limited HTTP client for the tag/work-order catalog.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

var _ Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithCheckRate overrides the rate limit applied to CheckTag calls.
func WithCheckRate(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter.Stop()
		c.limiter = ratelimit.New(rps, burst)
	}
}

// NewClient creates a catalog client against the given base URL.
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultCheckRPS, defaultCheckBurst),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// CheckTag resolves a single raw identifier against the catalog.
// A 404 from the catalog means the tag does not exist; that is a valid
// answer, not an error.
func (c *Client) CheckTag(ctx context.Context, raw string) (CheckResult, error) {
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return CheckResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("number", raw)

	body, status, err := c.doRequest(ctx, http.MethodGet, "/tags/check", query, nil)
	if err != nil {
		return CheckResult{}, err
	}
	if status == http.StatusNotFound {
		return CheckResult{Valid: false}, nil
	}
	if status != http.StatusOK {
		return CheckResult{}, c.statusError(status, body)
	}

	var result CheckResult
	if err := json.Unmarshal(body, &result); err != nil {
		return CheckResult{}, fmt.Errorf("decode check response: %w", err)
	}
	return result, nil
}

// searchRequest is the catalog's search payload.
type searchRequest struct {
	Number      string `json:"number,omitempty"`
	Commessa    string `json:"commessa,omitempty"`
	Article     string `json:"article,omitempty"`
	Description string `json:"description,omitempty"`
	Line        string `json:"line,omitempty"`
	Client      string `json:"client,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

// SearchTags resolves the filter set against the catalog.
func (c *Client) SearchTags(ctx context.Context, filters domain.SearchFilters, page, pageSize int) (TagPage, error) {
	payload, err := json.Marshal(searchRequest{
		Number:      filters.Number,
		Commessa:    filters.Commessa,
		Article:     filters.Article,
		Description: filters.Description,
		Line:        filters.Line,
		Client:      filters.Client,
		OrderNumber: filters.OrderNumber,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		return TagPage{}, fmt.Errorf("encode search request: %w", err)
	}

	body, status, err := c.doRequest(ctx, http.MethodPost, "/tags/search", nil, payload)
	if err != nil {
		return TagPage{}, err
	}
	if status != http.StatusOK {
		return TagPage{}, c.statusError(status, body)
	}

	var result TagPage
	if err := json.Unmarshal(body, &result); err != nil {
		return TagPage{}, fmt.Errorf("decode search response: %w", err)
	}
	if result.Items == nil {
		result.Items = []domain.Tag{}
	}
	return result, nil
}

// ResolveTags fetches descriptive attributes for a set of tag IDs.
func (c *Client) ResolveTags(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	query := url.Values{}
	query.Set("ids", strings.Join(parts, ","))

	body, status, err := c.doRequest(ctx, http.MethodGet, "/tags", query, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError(status, body)
	}

	var tags []domain.Tag
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("decode resolve response: %w", err)
	}
	return tags, nil
}

// doRequest executes an HTTP request and returns the body and status code.
// Transport failures are wrapped as unavailable; status handling is the
// caller's business because 404 means different things per endpoint.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("catalog request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, domainerrors.Unavailable("catalog unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// statusError converts an unexpected upstream status into a domain error.
func (c *Client) statusError(status int, body []byte) error {
	msg := fmt.Sprintf("catalog returned status %d", status)
	cause := fmt.Errorf("%s: %s", msg, string(body))
	if status >= 500 {
		return domainerrors.Unavailable(msg).WithCause(cause)
	}
	return domainerrors.Internal(msg).WithCause(cause)
}
