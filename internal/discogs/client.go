// Package discogs is a small client for the Discogs database API, limited to
// what a 45 RPM lookup needs: searching, fetching a release and filtering
// search pages down to 7" vinyl singles.
package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.discogs.com"
	defaultAgent   = "fortyfive/0.1 +https://github.com/llehouerou/fortyfive"
	defaultPerPage = 50
	maxErrorBody   = 512
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API status %d", e.StatusCode)
	}
	return fmt.Sprintf("API status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	UserAgent   string
	Token       string
	Timeout     time.Duration
	MinInterval time.Duration // spacing between requests, 0 disables it
	PerPage     int
	HTTPClient  *http.Client
	Logger      *zap.Logger
}

// Client provides access to the Discogs API.
type Client struct {
	httpClient  *http.Client
	logger      *zap.Logger
	baseURL     string
	userAgent   string
	token       string
	perPage     int
	minInterval time.Duration

	lastRequest time.Time
	mu          sync.Mutex
}

// NewClient creates a new Discogs API client.
func NewClient(opts Options) *Client {
	c := &Client{
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		baseURL:     opts.BaseURL,
		userAgent:   opts.UserAgent,
		token:       opts.Token,
		perPage:     opts.PerPage,
		minInterval: opts.MinInterval,
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultAgent
	}
	if c.perPage <= 0 {
		c.perPage = defaultPerPage
	}
	return c
}

// Search queries the database for records of the given type. Pages are
// 1-indexed; a page past the last one returns an empty Page, not an error.
func (c *Client) Search(ctx context.Context, query string, typ ResultType, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("q", query)
	if typ != "" {
		params.Set("type", string(typ))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(c.perPage))

	var resp searchResponse
	err := c.get(ctx, "/database/search", params, &resp)
	if err != nil {
		if page > 1 && IsNotFound(err) {
			c.logger.Debug("page past end of results",
				zap.String("query", query), zap.Int("page", page))
			return &Page{Number: page, PerPage: c.perPage}, nil
		}
		return nil, err
	}

	result := &Page{
		Number:  page,
		Pages:   resp.Pagination.Pages,
		PerPage: resp.Pagination.PerPage,
		Items:   resp.Pagination.Items,
	}
	if resp.Pagination.Pages > 0 && page > resp.Pagination.Pages {
		return result, nil
	}

	result.Results = make([]Result, 0, len(resp.Results))
	for _, r := range resp.Results {
		result.Results = append(result.Results, convertResult(r))
	}

	c.logger.Debug("search page loaded",
		zap.String("query", query),
		zap.String("type", string(typ)),
		zap.Int("page", page),
		zap.Int("pages", result.Pages),
		zap.Int("records", len(result.Results)))

	return result, nil
}

// GetRelease fetches the full release record, including its tracklist.
func (c *Client) GetRelease(ctx context.Context, id int) (*Release, error) {
	var resp releaseResponse
	if err := c.get(ctx, "/releases/"+strconv.Itoa(id), nil, &resp); err != nil {
		return nil, err
	}
	return convertRelease(resp), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.waitForRateLimit(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("discogs request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// waitForRateLimit spaces consecutive requests by at least minInterval.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.minInterval > 0 && !c.lastRequest.IsZero() {
		if wait := c.minInterval - time.Since(c.lastRequest); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}
