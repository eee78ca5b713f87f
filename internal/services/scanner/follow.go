package scanner

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/models"
)

const (
	// FollowBatchSize bounds in-flight detail-page fetches. Batch n+1 does
	// not start until batch n has fully settled.
	FollowBatchSize = 5

	// DefaultFollowLimit caps the number of detail pages visited when a
	// follow rule specifies no limit
	DefaultFollowLimit = 30
)

// FollowCrawler fetches a bounded, concurrency-limited batch of detail-page
// URLs from a list page and re-runs extraction against each fetched document
type FollowCrawler struct {
	extractor *Extractor
	fetcher   interfaces.Fetcher
	logger    arbor.ILogger
}

// NewFollowCrawler creates a new follow crawler
func NewFollowCrawler(extractor *Extractor, fetcher interfaces.Fetcher, logger arbor.ILogger) *FollowCrawler {
	return &FollowCrawler{
		extractor: extractor,
		fetcher:   fetcher,
		logger:    logger,
	}
}

// FollowAndExtract collects detail-page URLs from the list document and
// extracts links from each fetched page using the follow spec's detail rule.
// A failing URL contributes zero records and never aborts sibling fetches or
// later batches.
func (f *FollowCrawler) FollowAndExtract(ctx context.Context, doc *goquery.Document, scanCtx models.ScanContext, follow *models.FollowSpec) []models.LinkRecord {
	urls := f.collectDetailURLs(doc, scanCtx, follow)
	if len(urls) == 0 {
		return nil
	}

	detailRule := detailSiteRule(follow.DetailRule)

	var records []models.LinkRecord
	for start := 0; start < len(urls); start += FollowBatchSize {
		end := start + FollowBatchSize
		if end > len(urls) {
			end = len(urls)
		}
		batch := urls[start:end]

		// All-settled join: every fetch in the batch runs to completion,
		// successes keep their in-batch order.
		results := make([][]models.LinkRecord, len(batch))
		var wg sync.WaitGroup
		for i, detailURL := range batch {
			wg.Add(1)
			go func(i int, detailURL string) {
				defer wg.Done()

				detailDoc, err := f.fetcher.Fetch(ctx, detailURL)
				if err != nil {
					f.logger.Debug().Err(err).Str("url", detailURL).Msg("Detail page fetch failed")
					return
				}

				detailCtx := models.ScanContext{Host: scanCtx.Host, URL: detailURL}
				results[i] = f.extractor.Extract(detailDoc, detailCtx, detailRule).Links
			}(i, detailURL)
		}
		wg.Wait()

		for _, batchRecords := range results {
			records = append(records, batchRecords...)
		}
	}

	f.logger.Debug().
		Str("host", scanCtx.Host).
		Int("pages", len(urls)).
		Int("links", len(records)).
		Msg("Follow crawl completed")

	return records
}

// collectDetailURLs gathers candidate URLs via the href selector,
// deduplicates them, and caps the set at the follow limit in document order
func (f *FollowCrawler) collectDetailURLs(doc *goquery.Document, scanCtx models.ScanContext, follow *models.FollowSpec) []string {
	limit := follow.Limit
	if limit <= 0 {
		limit = DefaultFollowLimit
	}

	base := parseBase(scanCtx.URL)
	seen := make(map[string]bool)
	var urls []string

	doc.Find(follow.HrefSelector).EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href := resolveAnchorHref(anchor, base)
		if href == "" || seen[href] {
			return true
		}
		seen[href] = true
		urls = append(urls, href)
		return len(urls) < limit
	})

	return urls
}

// detailSiteRule lifts a nested detail rule into a full site rule for the
// extractor. Page mode unless the detail rule states otherwise.
func detailSiteRule(detail *models.DetailRule) *models.SiteRule {
	rule := &models.SiteRule{
		ID:        "follow-detail",
		Mode:      detail.Mode,
		Selectors: detail.Selectors,
		Extract:   detail.Extract,
	}
	if rule.Mode == "" {
		rule.Mode = models.RuleModePage
	}
	return rule
}
