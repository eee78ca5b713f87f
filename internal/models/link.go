package models

import (
	"strings"
)

// LinkKind classifies a discovered resource URL
type LinkKind string

const (
	LinkKindMagnet  LinkKind = "magnet"
	LinkKindTorrent LinkKind = "torrent"
	LinkKindHTTP    LinkKind = "http"
	LinkKindOther   LinkKind = "other"
)

// ClassifyLink returns the LinkKind for a URL
func ClassifyLink(rawURL string) LinkKind {
	value := strings.ToLower(strings.TrimSpace(rawURL))
	if strings.HasPrefix(value, "magnet:") {
		return LinkKindMagnet
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		if strings.HasSuffix(value, ".torrent") || strings.Contains(value, ".torrent") {
			return LinkKindTorrent
		}
		return LinkKindHTTP
	}
	return LinkKindOther
}

// LinkRecord is one discovered downloadable resource. URL is absolute and,
// for HTTP(S) links, normalized (fragment and tracking parameters stripped).
// Seeders/Leechers are nil when the source exposes no swarm health.
type LinkRecord struct {
	ID              string   `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	SourceHost      string   `json:"source_host"`
	Kind            LinkKind `json:"kind"`
	NormalizedTitle string   `json:"normalized_title,omitempty"`
	Seeders         *int     `json:"seeders,omitempty"`
	Leechers        *int     `json:"leechers,omitempty"`
	Size            string   `json:"size,omitempty"`
}

// SearchText returns the lowercase haystack used for keyword filtering
func (l *LinkRecord) SearchText() string {
	return strings.ToLower(l.Title + " " + l.URL + " " + l.SourceHost + " " + l.NormalizedTitle)
}

// PushFailure records one link that could not be submitted
type PushFailure struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// PushOutcome is the result of one push call. Per-link failures are reported
// here, never as an error.
type PushOutcome struct {
	Succeeded int           `json:"succeeded"`
	Failed    []PushFailure `json:"failed"`
}
