package scanner

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/models"
	"github.com/ternarybob/ferret/internal/services/aggregate"
)

// Extraction is the result of one extraction pass. Links are URL-deduplicated;
// Groups associate row-mode links with their row's document position.
type Extraction struct {
	Links  []models.LinkRecord
	Groups []models.RowGroup
}

// Extractor walks a document for anchors matching a rule's link selector and
// builds link records
type Extractor struct {
	logger arbor.ILogger
}

// NewExtractor creates a new extractor
func NewExtractor(logger arbor.ILogger) *Extractor {
	return &Extractor{
		logger: logger,
	}
}

// Extract runs a site rule against a document. Dispatches on the rule's mode
// tag; a follow rule's own selectors are ignored here (the follow crawler
// owns extraction for those).
func (e *Extractor) Extract(doc *goquery.Document, ctx models.ScanContext, rule *models.SiteRule) Extraction {
	base := parseBase(ctx.URL)

	if rule.Mode == models.RuleModeRow {
		return e.extractRows(doc, ctx, rule, base)
	}
	return e.extractPage(doc, ctx, rule, base)
}

// extractRows groups anchors by a repeating row element, one title/stat
// context per row
func (e *Extractor) extractRows(doc *goquery.Document, ctx models.ScanContext, rule *models.SiteRule, base *url.URL) Extraction {
	var result Extraction
	seen := make(map[string]bool)

	doc.Find(rule.Selectors.Row).Each(func(index int, row *goquery.Selection) {
		if !isVisible(row) {
			return
		}

		anchors := row.Find(rule.Selectors.Link)
		if anchors.Length() == 0 {
			return
		}

		rowTitle := selectText(row, rule.Selectors.Title)
		seeders := selectStat(row, rule.Selectors.Seeders)
		leechers := selectStat(row, rule.Selectors.Leechers)
		size := selectText(row, rule.Selectors.Size)

		var rowURLs []string
		anchors.Each(func(_ int, anchor *goquery.Selection) {
			if !isVisible(anchor) {
				return
			}

			href := resolveAnchorHref(anchor, base)
			if href == "" {
				return
			}

			recordURL := normalizeRecordURL(href)
			if !seen[recordURL] {
				seen[recordURL] = true
				title := ResolveTitle(anchor, href, rowTitle, rule.Extract)
				record := buildRecord(recordURL, title, ctx.Host)
				record.Seeders = seeders
				record.Leechers = leechers
				record.Size = size
				result.Links = append(result.Links, record)
			}

			// Later anchors for an already-seen URL fold into this row's
			// group without creating a second record.
			rowURLs = append(rowURLs, recordURL)
		})

		if len(rowURLs) > 0 {
			result.Groups = append(result.Groups, models.RowGroup{Index: index, URLs: rowURLs})
		}
	})

	e.logger.Debug().
		Str("host", ctx.Host).
		Str("rule", rule.ID).
		Int("links", len(result.Links)).
		Int("rows", len(result.Groups)).
		Msg("Row extraction completed")

	return result
}

// extractPage uses one title/stat context for the whole document
func (e *Extractor) extractPage(doc *goquery.Document, ctx models.ScanContext, rule *models.SiteRule, base *url.URL) Extraction {
	var result Extraction
	seen := make(map[string]bool)

	pageTitle := selectText(doc.Selection, rule.Selectors.Title)

	doc.Find(rule.Selectors.Link).Each(func(_ int, anchor *goquery.Selection) {
		if !isVisible(anchor) {
			return
		}

		href := resolveAnchorHref(anchor, base)
		if href == "" {
			return
		}

		recordURL := normalizeRecordURL(href)
		if seen[recordURL] {
			return
		}
		seen[recordURL] = true

		title := ResolveTitle(anchor, href, pageTitle, rule.Extract)
		result.Links = append(result.Links, buildRecord(recordURL, title, ctx.Host))
	})

	e.logger.Debug().
		Str("host", ctx.Host).
		Str("rule", rule.ID).
		Int("links", len(result.Links)).
		Msg("Page extraction completed")

	return result
}

// ExtractGeneric scans every anchor on the page. Magnet and .torrent anchors
// always pass; HTTP(S) anchors must look like downloads or they are dropped.
func (e *Extractor) ExtractGeneric(doc *goquery.Document, ctx models.ScanContext) Extraction {
	var result Extraction
	seen := make(map[string]bool)
	base := parseBase(ctx.URL)

	doc.Find(GenericLinkSelector).Each(func(_ int, anchor *goquery.Selection) {
		if !isVisible(anchor) {
			return
		}

		href := resolveAnchorHref(anchor, base)
		if href == "" {
			return
		}

		kind := models.ClassifyLink(href)
		switch kind {
		case models.LinkKindMagnet, models.LinkKindTorrent:
			// always actionable
		case models.LinkKindHTTP:
			if !isLikelyDownloadAnchor(anchor, href) {
				return
			}
		default:
			return
		}

		recordURL := normalizeRecordURL(href)
		if seen[recordURL] {
			return
		}
		seen[recordURL] = true

		title := ResolveTitle(anchor, href, "", nil)
		result.Links = append(result.Links, buildRecord(recordURL, title, ctx.Host))
	})

	e.logger.Debug().
		Str("host", ctx.Host).
		Int("links", len(result.Links)).
		Msg("Generic extraction completed")

	return result
}

// parseBase parses the page URL for relative href resolution
func parseBase(rawURL string) *url.URL {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return base
}

// resolveAnchorHref reads and resolves an anchor's href to an absolute URL
func resolveAnchorHref(anchor *goquery.Selection, base *url.URL) string {
	href, ok := anchor.Attr("href")
	if !ok {
		return ""
	}
	return common.ResolveHref(href, base)
}

// normalizeRecordURL normalizes HTTP(S) URLs; other schemes pass through
func normalizeRecordURL(href string) string {
	return common.NormalizeHTTPURL(href)
}

// buildRecord assembles a link record with a fresh ID and normalized title
func buildRecord(recordURL, title, sourceHost string) models.LinkRecord {
	return models.LinkRecord{
		ID:              common.NewLinkID(),
		URL:             recordURL,
		Title:           title,
		SourceHost:      sourceHost,
		Kind:            models.ClassifyLink(recordURL),
		NormalizedTitle: aggregate.NormalizeTitle(title),
	}
}

// selectText returns the trimmed text of the first selector match, or ""
func selectText(scope *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(scope.Find(selector).First().Text())
}

var leadingIntRegex = regexp.MustCompile(`^-?\d+`)

// selectStat parses an integer stat from the first selector match carrying
// numeric text. Non-numeric text yields an absent field, not zero.
func selectStat(scope *goquery.Selection, selector string) *int {
	if selector == "" {
		return nil
	}

	var value *int
	scope.Find(selector).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		text := strings.TrimSpace(cell.Text())
		match := leadingIntRegex.FindString(text)
		if match == "" {
			return true // keep looking
		}
		parsed, err := strconv.Atoi(match)
		if err != nil {
			return true
		}
		value = &parsed
		return false
	})
	return value
}
