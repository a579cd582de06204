// Package coverart downloads release images and turns them into terminal
// art.
package coverart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxImageSize = 10 * 1024 * 1024 // 10 MB

// ErrTooLarge is returned for images over the size limit.
var ErrTooLarge = errors.New("image too large")

// Fetcher downloads image data over HTTP.
type Fetcher struct {
	logger    *zap.Logger
	client    *http.Client
	userAgent string
	maxSize   int64
}

// NewFetcher creates a fetcher. Some image hosts reject requests without a
// User-Agent, so one is always sent.
func NewFetcher(logger *zap.Logger, userAgent string, timeout time.Duration) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxSize:   maxImageSize,
	}
}

// Fetch downloads the image at url. Any non-2xx status or non-image
// content type is a failure, as is a body over the size limit.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("no image url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("url is not an image: %s", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, f.maxSize)
	}

	f.logger.Debug("image fetched", zap.Int("bytes", len(data)), zap.String("url", url))
	return data, nil
}
