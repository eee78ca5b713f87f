package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/ferret/internal/models"
)

func testResolver() *Resolver {
	return NewResolver(arbor.NewLogger())
}

func customRule(id string, hostSuffix ...string) models.SiteRule {
	return models.SiteRule{
		ID:        id,
		Name:      id,
		Enabled:   true,
		Mode:      models.RuleModePage,
		Match:     models.RuleMatch{HostSuffix: hostSuffix},
		Selectors: models.RuleSelectors{Link: `a[href^="magnet:"]`},
	}
}

func TestResolve_GenericAlwaysMatches(t *testing.T) {
	active := testResolver().Resolve(models.ScanContext{Host: "unknown.example", URL: "https://unknown.example/"}, nil)

	assert.True(t, active.Generic)
	assert.Equal(t, GenericRuleID, active.Rule.ID)
}

func TestResolve_CustomBeatsBuiltin(t *testing.T) {
	// nyaa.si has a builtin; a matching custom rule must still win.
	custom := []models.SiteRule{customRule("my-nyaa", "nyaa.si")}

	active := testResolver().Resolve(models.ScanContext{Host: "nyaa.si", URL: "https://nyaa.si/"}, custom)

	assert.True(t, active.Custom)
	assert.Equal(t, "my-nyaa", active.Rule.ID)
}

func TestResolve_CustomOrderRespected(t *testing.T) {
	custom := []models.SiteRule{
		customRule("first", "example.org"),
		customRule("second", "example.org"),
	}

	active := testResolver().Resolve(models.ScanContext{Host: "example.org", URL: "https://example.org/"}, custom)

	assert.Equal(t, "first", active.Rule.ID)
}

func TestResolve_DisabledCustomSkipped(t *testing.T) {
	disabled := customRule("disabled", "example.org")
	disabled.Enabled = false

	active := testResolver().Resolve(models.ScanContext{Host: "example.org", URL: "https://example.org/"}, []models.SiteRule{disabled})

	assert.True(t, active.Generic)
}

func TestResolve_BuiltinByHostSuffix(t *testing.T) {
	active := testResolver().Resolve(models.ScanContext{Host: "nyaa.si", URL: "https://nyaa.si/?q=show"}, nil)

	assert.False(t, active.Custom)
	assert.False(t, active.Generic)
	assert.Equal(t, "builtin-nyaa", active.Rule.ID)
}

func TestResolve_PirateBayByHostRegex(t *testing.T) {
	for _, host := range []string{"thepiratebay.org", "piratebay.live", "tpb.party"} {
		active := testResolver().Resolve(models.ScanContext{Host: host, URL: "https://" + host + "/search/x"}, nil)
		assert.Equal(t, "builtin-piratebay", active.Rule.ID, "host %s", host)
		assert.Equal(t, models.AggregateRanked, active.Rule.Aggregate)
	}
}

func TestResolve_PathRegexDiscriminates(t *testing.T) {
	// 1337x has two builtins split by path: detail pages vs the
	// popular-movies follow rule.
	detail := testResolver().Resolve(models.ScanContext{Host: "1337x.to", URL: "https://1337x.to/torrent/1234/x/"}, nil)
	assert.Equal(t, "builtin-1337x", detail.Rule.ID)

	popular := testResolver().Resolve(models.ScanContext{Host: "1337x.to", URL: "https://1337x.to/popular-movies"}, nil)
	assert.Equal(t, "builtin-1337x-popular-movies", popular.Rule.ID)
	require.NotNil(t, popular.Rule.Follow)

	other := testResolver().Resolve(models.ScanContext{Host: "1337x.to", URL: "https://1337x.to/cat/Movies/1/"}, nil)
	assert.True(t, other.Generic)
}

func TestBuiltinRules_AllValid(t *testing.T) {
	for _, rule := range BuiltinRules() {
		assert.NoError(t, rule.Validate(), "builtin %s", rule.ID)
	}
}

func TestRuleMatch_EmptyMatchesEverything(t *testing.T) {
	match := models.RuleMatch{}
	assert.True(t, match.Matches(models.ScanContext{Host: "anything.example", URL: "https://anything.example/x"}))
}
