package models

import (
	"net/url"
	"time"
)

// ScanContext identifies the page being scanned. It is threaded through rule
// resolution, extraction, and follow-crawling without mutation.
type ScanContext struct {
	Host string `json:"host"`
	URL  string `json:"url"`
}

// Path returns the path component of the context URL, or "" if unparseable
func (c ScanContext) Path() string {
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return parsed.Path
}

// RowGroup associates the links extracted from one row element with its
// document position. Consumers use groups for batch selection; multiple
// anchors in a row pointing at the same URL share one record.
type RowGroup struct {
	Index int      `json:"index"`
	URLs  []string `json:"urls"`
}

// ScanResult is one persisted scan
type ScanResult struct {
	ID        string       `json:"id" badgerhold:"key"`
	Context   ScanContext  `json:"context"`
	RuleID    string       `json:"rule_id"`
	RuleName  string       `json:"rule_name"`
	Links     []LinkRecord `json:"links"`
	Groups    []RowGroup   `json:"groups,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
