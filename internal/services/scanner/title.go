package scanner

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/ferret/internal/models"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// MagnetDisplayName returns the decoded dn parameter of a magnet URI, or ""
// when the href is not a magnet link or carries no display name.
func MagnetDisplayName(href string) string {
	if !strings.HasPrefix(href, "magnet:") {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(parsed.Query().Get("dn"))
}

// ResolveTitle derives a display label for an anchor. It never returns an
// empty string; the worst case is the href itself.
//
// A configured titleAttr bypasses the fallback chain entirely. Otherwise the
// chain runs in the rule's order (default magnetDn, anchorText, rowText,
// href), short-circuiting on the first non-empty hit.
func ResolveTitle(anchor *goquery.Selection, href, rowTitle string, extract *models.RuleExtract) string {
	if extract != nil && extract.TitleAttr != "" {
		if value, ok := anchor.Attr(extract.TitleAttr); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}

	fallback := models.DefaultTitleFallback
	if extract != nil && len(extract.TitleFallback) > 0 {
		fallback = extract.TitleFallback
	}

	for _, step := range fallback {
		switch step {
		case models.TitleStepMagnetDn:
			if name := MagnetDisplayName(href); name != "" {
				return name
			}
		case models.TitleStepAnchorText:
			if rowTitle != "" {
				return rowTitle
			}
			if text := strings.TrimSpace(anchor.Text()); text != "" {
				return text
			}
		case models.TitleStepRowText:
			parent := anchor.Closest("tr, li, div")
			if text := strings.TrimSpace(parent.Text()); text != "" {
				return whitespaceRegex.ReplaceAllString(text, " ")
			}
		case models.TitleStepHref:
			return href
		}
	}

	return href
}
