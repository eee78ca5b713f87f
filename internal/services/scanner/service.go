package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/interfaces"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/ternarybob/ferret/internal/services/aggregate"
	"github.com/ternarybob/ferret/internal/services/rules"
)

// ScanOptions tune one scan request
type ScanOptions struct {
	// Keywords keeps only links whose search text contains every keyword
	Keywords []string `json:"keywords,omitempty"`
	// AnyKeywords keeps links matching at least one keyword instead
	AnyKeywords bool `json:"any_keywords,omitempty"`
	// Render forces headless-browser fetching for the list page
	Render bool `json:"render,omitempty"`
}

// Service runs scans end to end: rule resolution, fetching, extraction,
// follow crawling, aggregation, filtering, and persistence
type Service struct {
	resolver    *rules.Resolver
	extractor   *Extractor
	fetcher     interfaces.Fetcher
	renderer    interfaces.Fetcher
	ruleStorage interfaces.RuleStorage
	scanStorage interfaces.ScanStorage
	rulesDir    string
	logger      arbor.ILogger
}

// NewService creates the scanning service. renderer may be nil when headless
// rendering is disabled.
func NewService(
	resolver *rules.Resolver,
	extractor *Extractor,
	fetcher interfaces.Fetcher,
	renderer interfaces.Fetcher,
	storage interfaces.StorageManager,
	rulesDir string,
	logger arbor.ILogger,
) *Service {
	return &Service{
		resolver:    resolver,
		extractor:   extractor,
		fetcher:     fetcher,
		renderer:    renderer,
		ruleStorage: storage.RuleStorage(),
		scanStorage: storage.ScanStorage(),
		rulesDir:    rulesDir,
		logger:      logger,
	}
}

// ScanURL fetches a page and scans it. The resolved rule decides row/page
// walking, follow crawling, and the aggregation policy.
func (s *Service) ScanURL(ctx context.Context, rawURL string, opts ScanOptions) (*models.ScanResult, error) {
	scanCtx := models.ScanContext{
		Host: common.HostFromURL(rawURL),
		URL:  rawURL,
	}
	if scanCtx.Host == "" {
		return nil, fmt.Errorf("invalid scan URL: %s", rawURL)
	}

	active := s.resolveRule(ctx, scanCtx)

	fetcher := s.fetcher
	if (opts.Render || active.Rule.Render) && s.renderer != nil {
		fetcher = s.renderer
	}

	doc, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return s.scan(ctx, doc, scanCtx, active, opts)
}

// ScanDocument scans already-fetched HTML against the rule resolved for the
// given page URL. Used by the text/document API where the caller supplies the
// markup.
func (s *Service) ScanDocument(ctx context.Context, html, pageURL string, opts ScanOptions) (*models.ScanResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	scanCtx := models.ScanContext{
		Host: common.HostFromURL(pageURL),
		URL:  pageURL,
	}

	active := s.resolveRule(ctx, scanCtx)
	return s.scan(ctx, doc, scanCtx, active, opts)
}

// ScanText scrapes download links out of free-form text (pasted clipboard
// content, logs, chat transcripts). No rule resolution or persistence.
func (s *Service) ScanText(text string, opts ScanOptions) []models.LinkRecord {
	records := ExtractFromText(text)
	records = aggregate.Generic(records)
	return filterByKeywords(records, opts)
}

// resolveRule loads custom rules (stored first, then rule-directory files)
// and resolves the active rule for the context
func (s *Service) resolveRule(ctx context.Context, scanCtx models.ScanContext) rules.ActiveRule {
	var custom []models.SiteRule

	if s.ruleStorage != nil {
		stored, err := s.ruleStorage.ListRules(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to load stored rules")
		} else {
			custom = append(custom, stored...)
		}
	}

	fileRules, err := rules.LoadFromDir(s.rulesDir, s.logger)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load rule files")
	} else {
		custom = append(custom, fileRules...)
	}

	return s.resolver.Resolve(scanCtx, custom)
}

// scan runs extraction for a resolved rule and assembles the persisted result
func (s *Service) scan(ctx context.Context, doc *goquery.Document, scanCtx models.ScanContext, active rules.ActiveRule, opts ScanOptions) (*models.ScanResult, error) {
	start := time.Now()

	var extraction Extraction
	switch {
	case active.Generic:
		extraction = s.extractor.ExtractGeneric(doc, scanCtx)
	case active.Rule.Follow != nil:
		crawler := NewFollowCrawler(s.extractor, s.fetcher, s.logger)
		extraction.Links = crawler.FollowAndExtract(ctx, doc, scanCtx, active.Rule.Follow)
	default:
		extraction = s.extractor.Extract(doc, scanCtx, &active.Rule)
	}

	links := aggregate.ForKind(active.Rule.Aggregate)(extraction.Links)
	links = filterByKeywords(links, opts)

	result := &models.ScanResult{
		ID:        common.NewScanID(),
		Context:   scanCtx,
		RuleID:    active.Rule.ID,
		RuleName:  active.Rule.Name,
		Links:     links,
		Groups:    extraction.Groups,
		CreatedAt: time.Now().UTC(),
	}

	if s.scanStorage != nil {
		if err := s.scanStorage.SaveScan(ctx, result); err != nil {
			s.logger.Warn().Err(err).Str("scan_id", result.ID).Msg("Failed to persist scan result")
		}
	}

	s.logger.Info().
		Str("scan_id", result.ID).
		Str("host", scanCtx.Host).
		Str("rule", active.Rule.ID).
		Int("links", len(links)).
		Str("duration", time.Since(start).String()).
		Msg("Scan completed")

	return result, nil
}

// filterByKeywords applies the keyword filter to the aggregated links.
// Empty keyword lists pass everything through unchanged.
func filterByKeywords(records []models.LinkRecord, opts ScanOptions) []models.LinkRecord {
	keywords := make([]string, 0, len(opts.Keywords))
	for _, keyword := range opts.Keywords {
		if trimmed := strings.ToLower(strings.TrimSpace(keyword)); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	if len(keywords) == 0 {
		return records
	}

	filtered := make([]models.LinkRecord, 0, len(records))
	for _, record := range records {
		haystack := record.SearchText()
		matched := 0
		for _, keyword := range keywords {
			if strings.Contains(haystack, keyword) {
				matched++
				if opts.AnyKeywords {
					break
				}
			}
		}
		if opts.AnyKeywords {
			if matched > 0 {
				filtered = append(filtered, record)
			}
		} else if matched == len(keywords) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
