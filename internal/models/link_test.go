package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLink(t *testing.T) {
	tests := []struct {
		url  string
		want LinkKind
	}{
		{"magnet:?xt=urn:btih:abc", LinkKindMagnet},
		{"MAGNET:?xt=urn:btih:abc", LinkKindMagnet},
		{"https://example.com/file.torrent", LinkKindTorrent},
		{"http://example.com/dl.torrent?key=1", LinkKindTorrent},
		{"https://example.com/movie.mkv", LinkKindHTTP},
		{"http://example.com/", LinkKindHTTP},
		{"ftp://example.com/file", LinkKindOther},
		{"javascript:void(0)", LinkKindOther},
		{"", LinkKindOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLink(tt.url), "url %q", tt.url)
	}
}

func TestSearchText(t *testing.T) {
	link := LinkRecord{
		URL:        "magnet:?xt=urn:btih:abc",
		Title:      "Show S01E01 1080p",
		SourceHost: "Nyaa.si",
	}

	haystack := link.SearchText()
	assert.Contains(t, haystack, "show s01e01")
	assert.Contains(t, haystack, "nyaa.si")
}
