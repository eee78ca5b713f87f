package models

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleMode selects how a rule walks the document
type RuleMode string

const (
	// RuleModeRow groups anchors by a repeating row element, one title/stat
	// context per row
	RuleModeRow RuleMode = "row"
	// RuleModePage uses a single title/stat context for the whole document
	RuleModePage RuleMode = "page"
)

// AggregateKind selects the post-extraction aggregation policy
type AggregateKind string

const (
	// AggregateGeneric dedupes by URL, first occurrence wins
	AggregateGeneric AggregateKind = "generic"
	// AggregateRanked merges near-duplicate titles by swarm health
	AggregateRanked AggregateKind = "ranked"
)

// TitleStep is one step of the title-resolution fallback chain
type TitleStep string

const (
	TitleStepMagnetDn   TitleStep = "magnetDn"
	TitleStepAnchorText TitleStep = "anchorText"
	TitleStepRowText    TitleStep = "rowText"
	TitleStepHref       TitleStep = "href"
)

// DefaultTitleFallback is the fallback order used when a rule specifies none
var DefaultTitleFallback = []TitleStep{TitleStepMagnetDn, TitleStepAnchorText, TitleStepRowText, TitleStepHref}

// RuleMatch decides whether a rule applies to a page. HostSuffix entries are
// OR-matched against the page host; an empty list matches every host.
// PathRegex, when set, must additionally match the URL path. HostRegex is an
// alternative host test used by builtins whose mirror domains share no common
// suffix.
type RuleMatch struct {
	HostSuffix []string `json:"host_suffix,omitempty" toml:"host_suffix" yaml:"host_suffix"`
	HostRegex  string   `json:"host_regex,omitempty" toml:"host_regex" yaml:"host_regex"`
	PathRegex  string   `json:"path_regex,omitempty" toml:"path_regex" yaml:"path_regex"`
}

// Matches reports whether the match applies to the scan context. It is pure
// and performs no I/O; an invalid regex simply fails the match.
func (m *RuleMatch) Matches(ctx ScanContext) bool {
	hostMatched := len(m.HostSuffix) == 0 && m.HostRegex == ""
	for _, suffix := range m.HostSuffix {
		if suffix != "" && strings.HasSuffix(ctx.Host, suffix) {
			hostMatched = true
			break
		}
	}
	if !hostMatched && m.HostRegex != "" {
		if re, err := regexp.Compile(m.HostRegex); err == nil && re.MatchString(ctx.Host) {
			hostMatched = true
		}
	}
	if !hostMatched {
		return false
	}

	if m.PathRegex == "" {
		return true
	}
	re, err := regexp.Compile(m.PathRegex)
	if err != nil {
		return false
	}
	return re.MatchString(ctx.Path())
}

// RuleSelectors are the CSS selectors a rule evaluates. Row is required in
// row mode; Seeders/Leechers/Size are optional per-row stat selectors.
type RuleSelectors struct {
	Row      string `json:"row,omitempty" toml:"row" yaml:"row"`
	Link     string `json:"link" toml:"link" yaml:"link"`
	Title    string `json:"title,omitempty" toml:"title" yaml:"title"`
	Seeders  string `json:"seeders,omitempty" toml:"seeders" yaml:"seeders"`
	Leechers string `json:"leechers,omitempty" toml:"leechers" yaml:"leechers"`
	Size     string `json:"size,omitempty" toml:"size" yaml:"size"`
}

// RuleExtract tunes title resolution. TitleAttr, when set, reads that anchor
// attribute literally and bypasses the fallback chain.
type RuleExtract struct {
	TitleAttr     string      `json:"title_attr,omitempty" toml:"title_attr" yaml:"title_attr"`
	TitleFallback []TitleStep `json:"title_fallback,omitempty" toml:"title_fallback" yaml:"title_fallback"`
}

// DetailRule is the nested rule applied to fetched detail pages
type DetailRule struct {
	Mode      RuleMode      `json:"mode" toml:"mode" yaml:"mode"`
	Selectors RuleSelectors `json:"selectors" toml:"selectors" yaml:"selectors"`
	Extract   *RuleExtract  `json:"extract,omitempty" toml:"extract" yaml:"extract"`
}

// FollowSpec marks a rule as a list rule: the page is treated as a list of
// detail-page links, and extraction is delegated entirely to the follow
// crawler using DetailRule.
type FollowSpec struct {
	HrefSelector string      `json:"href_selector" toml:"href_selector" yaml:"href_selector"`
	Limit        int         `json:"limit,omitempty" toml:"limit" yaml:"limit"`
	DetailRule   *DetailRule `json:"detail_rule" toml:"detail_rule" yaml:"detail_rule"`
}

// SiteRule is a matching + extraction recipe. Rules are static configuration:
// loaded once per scan request and never mutated by the core.
type SiteRule struct {
	ID        string        `json:"id" toml:"id" yaml:"id" badgerhold:"key"`
	Name      string        `json:"name" toml:"name" yaml:"name"`
	Enabled   bool          `json:"enabled" toml:"enabled" yaml:"enabled"`
	Mode      RuleMode      `json:"mode" toml:"mode" yaml:"mode"`
	Match     RuleMatch     `json:"match" toml:"match" yaml:"match"`
	Selectors RuleSelectors `json:"selectors" toml:"selectors" yaml:"selectors"`
	Extract   *RuleExtract  `json:"extract,omitempty" toml:"extract" yaml:"extract"`
	Follow    *FollowSpec   `json:"follow,omitempty" toml:"follow" yaml:"follow"`
	Aggregate AggregateKind `json:"aggregate,omitempty" toml:"aggregate" yaml:"aggregate"`
	Render    bool          `json:"render,omitempty" toml:"render" yaml:"render"`
}

// Validate checks the structural requirements of a rule definition
func (r *SiteRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule id is required")
	}
	if r.Mode != RuleModeRow && r.Mode != RuleModePage {
		return fmt.Errorf("rule %s: mode must be %q or %q", r.ID, RuleModeRow, RuleModePage)
	}
	if r.Mode == RuleModeRow && r.Selectors.Row == "" {
		return fmt.Errorf("rule %s: row mode requires a row selector", r.ID)
	}
	if r.Selectors.Link == "" && r.Follow == nil {
		return fmt.Errorf("rule %s: link selector is required", r.ID)
	}
	if r.Match.PathRegex != "" {
		if _, err := regexp.Compile(r.Match.PathRegex); err != nil {
			return fmt.Errorf("rule %s: invalid path regex: %w", r.ID, err)
		}
	}
	if r.Follow != nil {
		if r.Follow.HrefSelector == "" {
			return fmt.Errorf("rule %s: follow requires an href selector", r.ID)
		}
		if r.Follow.DetailRule == nil {
			return fmt.Errorf("rule %s: follow requires a detail rule", r.ID)
		}
	}
	return nil
}
