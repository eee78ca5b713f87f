package rules

import (
	"github.com/ternarybob/ferret/internal/models"
)

// GenericRuleID identifies the catch-all rule that matches every page
const GenericRuleID = "generic"

// magnetOrTorrent is the anchor selector shared by most builtin rules
const magnetOrTorrent = `a[href^="magnet:"],a[href$=".torrent"]`

// BuiltinRules returns the built-in site rules in match-priority order.
// Callers receive fresh copies; mutating the result never affects later calls.
func BuiltinRules() []models.SiteRule {
	rules := make([]models.SiteRule, len(builtinRules))
	copy(rules, builtinRules)
	return rules
}

// GenericRule is the always-matching fallback. The scanner treats it
// specially: every anchor on the page is considered, download-likelihood
// heuristics decide which HTTP links survive.
func GenericRule() models.SiteRule {
	return models.SiteRule{
		ID:        GenericRuleID,
		Name:      "Generic",
		Enabled:   true,
		Mode:      models.RuleModePage,
		Aggregate: models.AggregateGeneric,
	}
}

var builtinRules = []models.SiteRule{
	{
		ID:      "builtin-piratebay",
		Name:    "PirateBay",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostRegex: `(?i)(thepiratebay|piratebay|tpb)`,
		},
		Selectors: models.RuleSelectors{
			Row:      "tr, li.list-entry",
			Link:     magnetOrTorrent,
			Title:    ".detName a",
			Seeders:  `.item-seed, td:nth-of-type(4), td[align="right"]:nth-of-type(1)`,
			Leechers: `.item-leech, td:nth-of-type(5), td[align="right"]:nth-of-type(2)`,
		},
		Aggregate: models.AggregateRanked,
	},
	{
		ID:      "builtin-mikan",
		Name:    "Mikan Project",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostSuffix: []string{"mikanani.me"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Row:   "table tbody tr, .mikan-table tbody tr",
			Link:  magnetOrTorrent,
			Title: `td:nth-child(2) a, a.magnet, a[href$=".torrent"]`,
		},
	},
	{
		ID:      "builtin-dmhy",
		Name:    "DMHY",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostSuffix: []string{"dmhy.org"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Row:  "#topic_list tbody tr",
			Link: `a.download-arrow.arrow-magnet[href^="magnet:"]`,
			// the first anchor in td.title is usually the team link, not the
			// release title
			Title:   `td.title > a[href^="/topics/view/"]`,
			Size:    "td:nth-child(5)",
			Seeders: "td:nth-child(6)",
		},
	},
	{
		ID:      "builtin-dmhy-share",
		Name:    "DMHY Share",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostSuffix: []string{"share.dmhy.org"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Row:     "#topic_list tbody tr",
			Link:    `a.download-arrow.arrow-magnet[href^="magnet:"]`,
			Title:   `td.title > a[href^="/topics/view/"]`,
			Size:    "td:nth-child(5)",
			Seeders: "td:nth-child(6)",
		},
	},
	{
		ID:      "builtin-bangumi-moe",
		Name:    "Bangumi.moe",
		Enabled: true,
		Mode:    models.RuleModePage,
		Match: models.RuleMatch{
			HostSuffix: []string{"bangumi.moe"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Link:  magnetOrTorrent,
			Title: "h1",
		},
	},
	{
		ID:      "builtin-acg-rip",
		Name:    "ACG.RIP",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostSuffix: []string{"acg.rip"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Row:   "table tbody tr, .table tbody tr",
			Link:  magnetOrTorrent,
			Title: `td.title a, td:nth-child(2) a, a[href$=".torrent"]`,
		},
	},
	{
		ID:      "builtin-nyaa",
		Name:    "Nyaa",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostSuffix: []string{"nyaa.si"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Row:   "table tbody tr",
			Link:  `a[href^="magnet:"]`,
			Title: "td:nth-child(2) a",
		},
	},
	{
		ID:      "builtin-yts",
		Name:    "YTS",
		Enabled: true,
		Mode:    models.RuleModePage,
		Match: models.RuleMatch{
			HostSuffix: []string{"yts.mx", "yts.lt"},
			PathRegex:  "/movies/",
		},
		Selectors: models.RuleSelectors{
			Link:  `a[href^="magnet:"]`,
			Title: "h1",
		},
	},
	{
		ID:      "builtin-eztv",
		Name:    "EZTV",
		Enabled: true,
		Mode:    models.RuleModeRow,
		Match: models.RuleMatch{
			HostSuffix: []string{"eztv.re", "eztv.wf", "eztv.yt"},
			PathRegex:  "^/",
		},
		Selectors: models.RuleSelectors{
			Row:   "table tr.forum_header_border",
			Link:  `a[href^="magnet:"]`,
			Title: "td:nth-child(2) a",
		},
	},
	{
		ID:      "builtin-eztv-home",
		Name:    "EZTV Home",
		Enabled: true,
		Mode:    models.RuleModePage,
		Match: models.RuleMatch{
			HostSuffix: []string{"eztv.re", "eztv.wf", "eztv.yt"},
			PathRegex:  "^/(home)?/?$",
		},
		Selectors: models.RuleSelectors{
			// the home listing rarely carries magnets directly; detail pages do
			Link: magnetOrTorrent,
		},
		Follow: &models.FollowSpec{
			HrefSelector: `a.epinfo[href^="/ep/"]`,
			Limit:        30,
			DetailRule: &models.DetailRule{
				Mode: models.RuleModePage,
				Selectors: models.RuleSelectors{
					Link:  magnetOrTorrent,
					Title: "h1",
				},
			},
		},
	},
	{
		ID:      "builtin-1337x",
		Name:    "1337x",
		Enabled: true,
		Mode:    models.RuleModePage,
		Match: models.RuleMatch{
			HostSuffix: []string{"1337x.to", "1377x.to"},
			PathRegex:  "^/torrent/",
		},
		Selectors: models.RuleSelectors{
			Link:  magnetOrTorrent,
			Title: "h1",
		},
	},
	{
		ID:      "builtin-1337x-popular-movies",
		Name:    "1337x Popular Movies",
		Enabled: true,
		Mode:    models.RuleModePage,
		Match: models.RuleMatch{
			HostSuffix: []string{"1337x.to", "1377x.to"},
			PathRegex:  "^/popular-movies/?$",
		},
		Selectors: models.RuleSelectors{
			Link: magnetOrTorrent,
		},
		Follow: &models.FollowSpec{
			HrefSelector: `table.table-list a[href^="/torrent/"]`,
			Limit:        30,
			DetailRule: &models.DetailRule{
				Mode: models.RuleModePage,
				Selectors: models.RuleSelectors{
					Link:  magnetOrTorrent,
					Title: "h1",
				},
			},
		},
	},
	{
		ID:      "builtin-torrentgalaxy",
		Name:    "TorrentGalaxy",
		Enabled: true,
		Mode:    models.RuleModePage,
		Match: models.RuleMatch{
			HostSuffix: []string{"torrentgalaxy.to"},
			PathRegex:  "^/torrent/",
		},
		Selectors: models.RuleSelectors{
			Link:  magnetOrTorrent,
			Title: "h1",
		},
	},
}
