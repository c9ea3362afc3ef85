package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/archivekeeper/internal/common"
)

const (
	DefaultBaseURL = "https://catalog.archives.gov/api/v2"
	defaultTimeout = 15 * time.Second

	maxBodyBytes    = 32 << 20
	maxExcerptBytes = 200
)

// Client is the subset of the catalog API the application consumes. All
// three lookups return the same raw hit shape.
type Client interface {
	Search(ctx context.Context, params SearchParams) (*SearchResponse, error)
	GetRecord(ctx context.Context, naID string) (*Hit, error)
	GetChildren(ctx context.Context, parentID string, limit int) ([]Hit, error)
}

// SearchParams narrows a catalog search. Zero values are omitted from the
// query string.
type SearchParams struct {
	Query           string
	Page            int
	Limit           int
	Level           string
	AvailableOnline bool
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	if q := strings.TrimSpace(p.Query); q != "" {
		v.Set("q", q)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Level != "" {
		v.Set("levelOfDescription", p.Level)
	}
	if p.AvailableOnline {
		v.Set("availableOnline", "true")
	}
	return v
}

// UpstreamError is a non-success or unreadable response from the catalog.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("catalog api responded %d", e.Status)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == common.ErrorUpstream }

// HTTPClient talks to the catalog over HTTPS. Requests are bounded by the
// configured timeout and are never retried.
type HTTPClient struct {
	client  *http.Client
	base    http.RoundTripper
	cache   *cache.Cache
	baseURL string
	apiKey  string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client. Single-record lookups are cached for
// cacheTTL; a zero TTL disables the cache.
func NewHTTPClient(baseURL, apiKey string, timeout, cacheTTL time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &HTTPClient{
		base:    http.DefaultTransport,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
	if cacheTTL > 0 {
		c.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	c.client = &http.Client{Timeout: timeout, Transport: c}
	return c
}

// RoundTrip attaches the API key to every outbound request.
func (c *HTTPClient) RoundTrip(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	return c.base.RoundTrip(req)
}

func (c *HTTPClient) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/records/search", params.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRecord looks a record up by its NARA id. It fails with
// common.ErrorRecordNotFound when the search yields no hit.
func (c *HTTPClient) GetRecord(ctx context.Context, naID string) (*Hit, error) {
	naID = strings.TrimSpace(naID)
	if _, err := strconv.ParseInt(naID, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: naId must be numeric, got %q", common.ErrorValidation, naID)
	}

	cacheKey := "record:" + naID
	if c.cache != nil {
		if x, found := c.cache.Get(cacheKey); found {
			hit := x.(Hit)
			return &hit, nil
		}
	}

	var resp SearchResponse
	if err := c.get(ctx, "/records/search", url.Values{"naId": {naID}}, &resp); err != nil {
		return nil, err
	}
	hits := resp.Hits()
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: naId %s", common.ErrorRecordNotFound, naID)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, hits[0], cache.DefaultExpiration)
	}
	return &hits[0], nil
}

func (c *HTTPClient) GetChildren(ctx context.Context, parentID string, limit int) ([]Hit, error) {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return nil, fmt.Errorf("%w: parent id is required", common.ErrorValidation)
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp SearchResponse
	if err := c.get(ctx, "/records/parentId/"+url.PathEscape(parentID), q, &resp); err != nil {
		return nil, err
	}
	return resp.Hits(), nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classifyTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Status: resp.StatusCode, Body: excerpt(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{
			Status: resp.StatusCode,
			Body:   excerpt(body),
			Err:    fmt.Errorf("malformed response: %w", err),
		}
	}
	return nil
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("catalog request cancelled: %w", context.Canceled)
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", common.ErrorTimeout, err)
	}
	return fmt.Errorf("%w: %v", common.ErrorUpstream, err)
}

// excerpt trims b to at most maxExcerptBytes without splitting a rune.
func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= maxExcerptBytes {
		return s
	}
	cut := maxExcerptBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
