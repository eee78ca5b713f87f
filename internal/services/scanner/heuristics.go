package scanner

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GenericLinkSelector is the anchor selector used when no site rule matches
const GenericLinkSelector = "a[href]"

// downloadExtensions are path suffixes that mark an HTTP URL as a direct
// download target
var downloadExtensions = []string{
	".torrent",
	".zip", ".rar", ".7z", ".gz", ".bz2", ".xz",
	".iso", ".apk", ".exe", ".dmg",
	".mp4", ".mkv", ".avi", ".mov",
	".mp3", ".flac",
	".pdf", ".epub",
	".srt", ".ass",
}

// downloadQueryKeys are query parameters that signal download intent
var downloadQueryKeys = []string{"download", "dl", "file", "filename", "attachment"}

// downloadKeywords is the fixed, partially localized keyword list matched
// against an anchor's visible text and descriptive attributes
var downloadKeywords = []string{"download", "dl", "direct", "mirror", "attachment", "下载", "直链", "镜像"}

// hasDownloadExtension reports whether the URL path ends in a known
// binary/media/archive extension
func hasDownloadExtension(path string) bool {
	lowered := strings.ToLower(path)
	for _, ext := range downloadExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}

// hasDownloadQueryKey reports whether the query carries a download-intent key
func hasDownloadQueryKey(query url.Values) bool {
	for _, key := range downloadQueryKeys {
		if query.Has(key) {
			return true
		}
	}
	return false
}

// isLikelyDownloadAnchor classifies an HTTP(S) anchor as a probable download.
// Ordinary navigation links fail every check and are dropped; magnet and
// .torrent anchors never reach this heuristic.
func isLikelyDownloadAnchor(anchor *goquery.Selection, href string) bool {
	if _, ok := anchor.Attr("download"); ok {
		return true
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	if hasDownloadExtension(parsed.Path) {
		return true
	}
	if hasDownloadQueryKey(parsed.Query()) {
		return true
	}

	haystack := strings.ToLower(anchor.Text())
	for _, attr := range []string{"aria-label", "title", "class"} {
		if value, ok := anchor.Attr(attr); ok {
			haystack += " " + strings.ToLower(value)
		}
	}
	for _, keyword := range downloadKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}

	return false
}

// IsLikelyDownloadURL applies the URL-only subset of the heuristic (extension
// or query key). Used for free-text link scraping, where no anchor exists.
func IsLikelyDownloadURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if hasDownloadExtension(parsed.Path) {
		return true
	}
	return hasDownloadQueryKey(parsed.Query())
}
