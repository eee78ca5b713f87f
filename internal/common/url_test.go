package common

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHTTPURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips tracking params and fragment",
			input:    "https://x.com/a?utm_source=y&download=1#frag",
			expected: "https://x.com/a?download=1",
		},
		{
			name:     "preserves non-tracking param order",
			input:    "https://x.com/a?z=1&a=2&m=3",
			expected: "https://x.com/a?z=1&a=2&m=3",
		},
		{
			name:     "drops fragment only",
			input:    "https://x.com/a#section",
			expected: "https://x.com/a",
		},
		{
			name:     "all params tracking",
			input:    "https://x.com/a?utm_source=y&fbclid=z",
			expected: "https://x.com/a",
		},
		{
			name:     "magnet passes through unchanged",
			input:    "magnet:?xt=urn:btih:abc&dn=Name",
			expected: "magnet:?xt=urn:btih:abc&dn=Name",
		},
		{
			name:     "no query or fragment",
			input:    "https://x.com/a/b",
			expected: "https://x.com/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHTTPURL(tt.input))
		})
	}
}

func TestHostFromURL(t *testing.T) {
	assert.Equal(t, "nyaa.si", HostFromURL("https://nyaa.si/?q=show"))
	assert.Equal(t, "example.com", HostFromURL("http://example.com:8080/path"))
	assert.Equal(t, "", HostFromURL("://bad"))
}

func TestResolveHref(t *testing.T) {
	base, err := url.Parse("https://tracker.example.org/browse/page2")
	require.NoError(t, err)

	assert.Equal(t, "https://tracker.example.org/ep/5", ResolveHref("/ep/5", base))
	assert.Equal(t, "https://tracker.example.org/browse/next", ResolveHref("next", base))
	assert.Equal(t, "magnet:?xt=urn:btih:abc", ResolveHref("magnet:?xt=urn:btih:abc", base))
	assert.Equal(t, "https://other.example/x", ResolveHref("https://other.example/x", base))
	assert.Equal(t, "", ResolveHref("", base))
	assert.Equal(t, "", ResolveHref("/relative", nil))
}
