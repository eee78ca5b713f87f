package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleMatch_HostSuffix(t *testing.T) {
	match := RuleMatch{HostSuffix: []string{"nyaa.si", "eztv.re"}}

	assert.True(t, match.Matches(ScanContext{Host: "nyaa.si", URL: "https://nyaa.si/"}))
	assert.True(t, match.Matches(ScanContext{Host: "www.eztv.re", URL: "https://www.eztv.re/"}))
	assert.False(t, match.Matches(ScanContext{Host: "example.com", URL: "https://example.com/"}))
}

func TestRuleMatch_HostRegex(t *testing.T) {
	match := RuleMatch{HostRegex: `(?i)(thepiratebay|piratebay|tpb)`}

	assert.True(t, match.Matches(ScanContext{Host: "thepiratebay.org", URL: "https://thepiratebay.org/"}))
	assert.True(t, match.Matches(ScanContext{Host: "tpb.party", URL: "https://tpb.party/"}))
	assert.False(t, match.Matches(ScanContext{Host: "nyaa.si", URL: "https://nyaa.si/"}))
}

func TestRuleMatch_PathRegex(t *testing.T) {
	match := RuleMatch{HostSuffix: []string{"yts.mx"}, PathRegex: "/movies/"}

	assert.True(t, match.Matches(ScanContext{Host: "yts.mx", URL: "https://yts.mx/movies/big-movie"}))
	assert.False(t, match.Matches(ScanContext{Host: "yts.mx", URL: "https://yts.mx/browse"}))
}

func TestRuleMatch_InvalidRegexFailsMatch(t *testing.T) {
	match := RuleMatch{HostSuffix: []string{"x.example"}, PathRegex: "["}
	assert.False(t, match.Matches(ScanContext{Host: "x.example", URL: "https://x.example/"}))
}

func TestSiteRule_Validate(t *testing.T) {
	valid := SiteRule{
		ID:        "r1",
		Mode:      RuleModeRow,
		Selectors: RuleSelectors{Row: "tr", Link: "a"},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		rule SiteRule
	}{
		{"missing id", SiteRule{Mode: RuleModePage, Selectors: RuleSelectors{Link: "a"}}},
		{"bad mode", SiteRule{ID: "r", Mode: "grid", Selectors: RuleSelectors{Link: "a"}}},
		{"row mode without row selector", SiteRule{ID: "r", Mode: RuleModeRow, Selectors: RuleSelectors{Link: "a"}}},
		{"no link selector and no follow", SiteRule{ID: "r", Mode: RuleModePage}},
		{"invalid path regex", SiteRule{ID: "r", Mode: RuleModePage, Match: RuleMatch{PathRegex: "["}, Selectors: RuleSelectors{Link: "a"}}},
		{"follow without detail rule", SiteRule{ID: "r", Mode: RuleModePage, Selectors: RuleSelectors{Link: "a"}, Follow: &FollowSpec{HrefSelector: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.rule.Validate())
		})
	}
}
