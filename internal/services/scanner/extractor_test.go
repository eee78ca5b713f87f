package scanner

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func testExtractor() *Extractor {
	return NewExtractor(arbor.NewLogger())
}

var listCtx = models.ScanContext{Host: "tracker.example.org", URL: "https://tracker.example.org/browse"}

func TestExtract_RowMode(t *testing.T) {
	html := `
	<table><tbody>
		<tr>
			<td class="title">Show S01E01</td>
			<td><a href="magnet:?xt=urn:btih:aaa">magnet</a></td>
			<td class="seed">12</td>
			<td class="leech">3</td>
			<td class="size">1.4 GB</td>
		</tr>
		<tr>
			<td class="title">Show S01E02</td>
			<td><a href="magnet:?xt=urn:btih:bbb">magnet</a></td>
			<td class="seed">7</td>
			<td class="leech">1</td>
			<td class="size">1.3 GB</td>
		</tr>
		<tr><td class="title">No link row</td></tr>
	</tbody></table>`

	rule := &models.SiteRule{
		ID:   "test-rows",
		Mode: models.RuleModeRow,
		Selectors: models.RuleSelectors{
			Row:      "tbody tr",
			Link:     `a[href^="magnet:"]`,
			Title:    "td.title",
			Seeders:  "td.seed",
			Leechers: "td.leech",
			Size:     "td.size",
		},
	}

	result := testExtractor().Extract(docFromHTML(t, html), listCtx, rule)

	require.Len(t, result.Links, 2)

	first := result.Links[0]
	assert.Equal(t, "magnet:?xt=urn:btih:aaa", first.URL)
	assert.Equal(t, "Show S01E01", first.Title)
	assert.Equal(t, "tracker.example.org", first.SourceHost)
	assert.Equal(t, models.LinkKindMagnet, first.Kind)
	require.NotNil(t, first.Seeders)
	assert.Equal(t, 12, *first.Seeders)
	require.NotNil(t, first.Leechers)
	assert.Equal(t, 3, *first.Leechers)
	assert.Equal(t, "1.4 GB", first.Size)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "show s01e01", first.NormalizedTitle)

	// Rows without a link contribute nothing.
	require.Len(t, result.Groups, 2)
	assert.Equal(t, []string{"magnet:?xt=urn:btih:aaa"}, result.Groups[0].URLs)
}

func TestExtract_RowMode_HiddenRowSkipped(t *testing.T) {
	html := `
	<table><tbody>
		<tr style="display:none"><td><a href="magnet:?xt=urn:btih:aaa">x</a></td></tr>
		<tr><td><a href="magnet:?xt=urn:btih:bbb">x</a></td></tr>
	</tbody></table>`

	rule := &models.SiteRule{
		ID:        "test-hidden",
		Mode:      models.RuleModeRow,
		Selectors: models.RuleSelectors{Row: "tbody tr", Link: "a"},
	}

	result := testExtractor().Extract(docFromHTML(t, html), listCtx, rule)

	require.Len(t, result.Links, 1)
	assert.Equal(t, "magnet:?xt=urn:btih:bbb", result.Links[0].URL)
}

func TestExtract_RowMode_DuplicateURLAcrossRows(t *testing.T) {
	html := `
	<table><tbody>
		<tr><td><a href="magnet:?xt=urn:btih:aaa">x</a></td></tr>
		<tr><td><a href="magnet:?xt=urn:btih:aaa">same target</a></td></tr>
	</tbody></table>`

	rule := &models.SiteRule{
		ID:        "test-dup",
		Mode:      models.RuleModeRow,
		Selectors: models.RuleSelectors{Row: "tbody tr", Link: "a"},
	}

	result := testExtractor().Extract(docFromHTML(t, html), listCtx, rule)

	assert.Len(t, result.Links, 1)
	// Both rows still report the URL in their group.
	require.Len(t, result.Groups, 2)
	assert.Equal(t, result.Groups[0].URLs, result.Groups[1].URLs)
}

func TestExtract_RowMode_NonNumericStatAbsent(t *testing.T) {
	html := `
	<table><tbody>
		<tr>
			<td><a href="magnet:?xt=urn:btih:aaa">x</a></td>
			<td class="seed">N/A</td>
		</tr>
	</tbody></table>`

	rule := &models.SiteRule{
		ID:        "test-stats",
		Mode:      models.RuleModeRow,
		Selectors: models.RuleSelectors{Row: "tbody tr", Link: "a", Seeders: "td.seed"},
	}

	result := testExtractor().Extract(docFromHTML(t, html), listCtx, rule)

	require.Len(t, result.Links, 1)
	assert.Nil(t, result.Links[0].Seeders, "non-numeric stat text yields an absent field, not zero")
}

func TestExtract_PageMode(t *testing.T) {
	html := `
	<h1>Big Movie (2024)</h1>
	<div>
		<a href="magnet:?xt=urn:btih:aaa">1080p</a>
		<a href="/files/big-movie.torrent">torrent</a>
	</div>`

	rule := &models.SiteRule{
		ID:   "test-page",
		Mode: models.RuleModePage,
		Selectors: models.RuleSelectors{
			Link:  `a[href^="magnet:"],a[href$=".torrent"]`,
			Title: "h1",
		},
	}

	ctx := models.ScanContext{Host: "movies.example.org", URL: "https://movies.example.org/movie/42"}
	result := testExtractor().Extract(docFromHTML(t, html), ctx, rule)

	require.Len(t, result.Links, 2)
	assert.Equal(t, "Big Movie (2024)", result.Links[0].Title)
	assert.Equal(t, "Big Movie (2024)", result.Links[1].Title)
	// Relative torrent href resolves against the page URL.
	assert.Equal(t, "https://movies.example.org/files/big-movie.torrent", result.Links[1].URL)
	assert.Equal(t, models.LinkKindTorrent, result.Links[1].Kind)
	assert.Empty(t, result.Groups)
}

func TestExtractGeneric(t *testing.T) {
	html := `
	<a href="magnet:?xt=urn:btih:aaa&dn=Kept+Magnet">magnet</a>
	<a href="https://example.com/files/archive.zip">archive</a>
	<a href="https://example.com/about">About page</a>
	<a href="https://example.com/tracked?utm_source=feed&download=1#frag">Download</a>
	<a href="javascript:void(0)">noise</a>
	<a href="magnet:?xt=urn:btih:aaa&dn=Kept+Magnet">duplicate</a>`

	ctx := models.ScanContext{Host: "example.com", URL: "https://example.com/"}
	result := testExtractor().ExtractGeneric(docFromHTML(t, html), ctx)

	urls := make([]string, len(result.Links))
	for i, link := range result.Links {
		urls[i] = link.URL
	}

	assert.Equal(t, []string{
		"magnet:?xt=urn:btih:aaa&dn=Kept+Magnet",
		"https://example.com/files/archive.zip",
		"https://example.com/tracked?download=1",
	}, urls)

	assert.Equal(t, "Kept Magnet", result.Links[0].Title)
}
