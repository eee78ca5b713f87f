package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/interfaces"
)

// Renderer fetches pages through a headless browser so script-built link
// listings are present in the document before extraction
type Renderer struct {
	userAgent string
	waitTime  time.Duration
	headless  bool
	logger    arbor.ILogger
}

func NewRenderer(config common.ScannerConfig, logger arbor.ILogger) *Renderer {
	waitTime := config.RenderWaitTime
	if waitTime <= 0 {
		waitTime = 2 * time.Second
	}
	return &Renderer{
		userAgent: config.UserAgent,
		waitTime:  waitTime,
		headless:  config.RenderHeadless,
		logger:    logger,
	}
}

var _ interfaces.Fetcher = (*Renderer)(nil)

// Fetch navigates to the URL, waits for scripts to settle, and parses the
// rendered DOM
func (r *Renderer) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	r.logger.Debug().
		Str("url", rawURL).
		Str("wait", r.waitTime.String()).
		Msg("Rendering page")

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.Sleep(r.waitTime),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s failed: %w", rawURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML from %s: %w", rawURL, err)
	}

	return doc, nil
}
