package scanner

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ternarybob/ferret/internal/common"
	"github.com/ternarybob/ferret/internal/models"
)

var (
	magnetTextRegex = regexp.MustCompile(`magnet:\?[^\s<>"']+`)
	httpTextRegex   = regexp.MustCompile(`https?://[^\s<>"']+`)
)

// trailingNoise is punctuation that commonly clings to a pasted URL
const trailingNoise = ".,;:!?)\"]'"

// ExtractFromText scrapes download links out of free-form text. Magnet URIs
// and .torrent URLs are always kept; other HTTP URLs only when they look like
// direct downloads.
func ExtractFromText(text string) []models.LinkRecord {
	records := []models.LinkRecord{}
	seen := make(map[string]bool)

	add := func(rawURL, title string) {
		if seen[rawURL] {
			return
		}
		seen[rawURL] = true
		records = append(records, buildRecord(rawURL, title, ""))
	}

	for _, match := range magnetTextRegex.FindAllString(text, -1) {
		title := MagnetDisplayName(match)
		if title == "" {
			title = match
		}
		add(match, title)
	}

	for _, match := range httpTextRegex.FindAllString(text, -1) {
		cleaned := strings.TrimRight(match, trailingNoise)
		if cleaned == "" {
			continue
		}
		if !IsLikelyDownloadURL(cleaned) {
			continue
		}
		normalized := common.NormalizeHTTPURL(cleaned)
		add(normalized, textLinkTitle(normalized))
	}

	return records
}

// textLinkTitle derives a display title for a bare URL: last path segment if
// present, host otherwise
func textLinkTitle(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		segments := strings.Split(path, "/")
		last := segments[len(segments)-1]
		if decoded, err := url.PathUnescape(last); err == nil {
			last = decoded
		}
		if last != "" {
			return last
		}
	}
	if parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	return rawURL
}
