package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/interfaces"
	"golang.org/x/time/rate"
)

// HTTPFetcher fetches pages over plain HTTP with cookies included and
// per-host rate limiting
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int
	perHostRate rate.Limit
	logger      arbor.ILogger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates a fetcher from scanner configuration. The client
// should carry a cookie jar so authenticated listing sites resolve correctly.
func NewHTTPFetcher(config common.ScannerConfig, client *http.Client, logger arbor.ILogger) *HTTPFetcher {
	return &HTTPFetcher{
		client:      client,
		userAgent:   config.UserAgent,
		maxBodySize: config.MaxBodySize,
		perHostRate: rate.Limit(config.FollowRate),
		logger:      logger,
		limiters:    make(map[string]*rate.Limiter),
	}
}

var _ interfaces.Fetcher = (*HTTPFetcher)(nil)

// Fetch GETs a URL and parses the response body as HTML
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := f.waitForHost(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid fetch URL %s: %w", rawURL, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s failed: status %d", rawURL, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, int64(f.maxBodySize))
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", rawURL, err)
	}

	return doc, nil
}

// waitForHost applies the per-host rate limit, if one is configured
func (f *HTTPFetcher) waitForHost(ctx context.Context, rawURL string) error {
	if f.perHostRate <= 0 {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return nil
	}
	host := parsed.Hostname()

	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(f.perHostRate, 1)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}
