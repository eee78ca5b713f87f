package common

import (
	"net/url"
	"strings"
)

// trackingParams is the fixed set of query parameters stripped from HTTP(S)
// links. Analytics decoration changes on every visit and would defeat
// dedup-by-URL.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"utm_id":       true,
	"gclid":        true,
	"fbclid":       true,
	"igshid":       true,
	"mc_cid":       true,
	"mc_eid":       true,
	"spm":          true,
}

func isTrackingParam(key string) bool {
	return trackingParams[strings.ToLower(key)]
}

// NormalizeHTTPURL strips the hash fragment and tracking query parameters from
// an HTTP(S) URL. Other query parameters are preserved in their original
// order. Non-HTTP URLs and unparseable input are returned unchanged.
func NormalizeHTTPURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return rawURL
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""

	if parsed.RawQuery != "" {
		// Rebuild the query by hand: url.Values re-encodes in sorted key
		// order, which would reorder surviving parameters.
		kept := make([]string, 0, 4)
		for _, pair := range strings.Split(parsed.RawQuery, "&") {
			if pair == "" {
				continue
			}
			key := pair
			if idx := strings.Index(pair, "="); idx >= 0 {
				key = pair[:idx]
			}
			if isTrackingParam(key) {
				continue
			}
			kept = append(kept, pair)
		}
		parsed.RawQuery = strings.Join(kept, "&")
	}

	return parsed.String()
}

// HostFromURL returns the hostname of a URL, or "" if it cannot be parsed.
func HostFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// PathFromURL returns the path component of a URL, or "" if it cannot be parsed.
func PathFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Path
}

// ResolveHref resolves a potentially relative href against a base URL.
// Returns "" when the href cannot be resolved to an absolute URL.
func ResolveHref(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	// Magnet and other opaque schemes carry no hierarchy to resolve.
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return href
	}
	if base == nil {
		return ""
	}

	resolved, err := base.Parse(href)
	if err != nil {
		return ""
	}
	return resolved.String()
}
