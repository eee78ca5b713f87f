package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyDownloadAnchor(t *testing.T) {
	tests := []struct {
		name string
		html string
		href string
		want bool
	}{
		{
			name: "download attribute",
			html: `<a href="https://example.com/get" download>get</a>`,
			href: "https://example.com/get",
			want: true,
		},
		{
			name: "archive extension",
			html: `<a href="https://example.com/pack.zip">pack</a>`,
			href: "https://example.com/pack.zip",
			want: true,
		},
		{
			name: "download query key",
			html: `<a href="https://example.com/get?download=1">get</a>`,
			href: "https://example.com/get?download=1",
			want: true,
		},
		{
			name: "keyword in anchor text",
			html: `<a href="https://example.com/x">Direct Download</a>`,
			href: "https://example.com/x",
			want: true,
		},
		{
			name: "localized keyword",
			html: `<a href="https://example.com/x">下载</a>`,
			href: "https://example.com/x",
			want: true,
		},
		{
			name: "keyword in aria-label",
			html: `<a href="https://example.com/x" aria-label="mirror link">x</a>`,
			href: "https://example.com/x",
			want: true,
		},
		{
			name: "plain navigation link",
			html: `<a href="https://example.com/about">About us</a>`,
			href: "https://example.com/about",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor := anchorFromHTML(t, tt.html)
			assert.Equal(t, tt.want, isLikelyDownloadAnchor(anchor, tt.href))
		})
	}
}

func TestIsLikelyDownloadURL(t *testing.T) {
	assert.True(t, IsLikelyDownloadURL("https://example.com/file.torrent"))
	assert.True(t, IsLikelyDownloadURL("https://example.com/movie.mkv"))
	assert.True(t, IsLikelyDownloadURL("https://example.com/get?dl=1"))
	assert.False(t, IsLikelyDownloadURL("https://example.com/article"))
	assert.False(t, IsLikelyDownloadURL("https://example.com/"))
}
