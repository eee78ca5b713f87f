// Package aggregate post-processes raw extracted link sets. Aggregation is
// pure: no I/O, fresh slices, input untouched.
package aggregate

import (
	"math"
	"sort"

	"github.com/ternarybob/ferret/internal/models"
)

// Generic dedupes records by URL. The first occurrence wins and input order
// is otherwise preserved, which makes the operation idempotent.
func Generic(records []models.LinkRecord) []models.LinkRecord {
	seen := make(map[string]bool, len(records))
	out := make([]models.LinkRecord, 0, len(records))
	for _, record := range records {
		if seen[record.URL] {
			continue
		}
		seen[record.URL] = true
		out = append(out, record)
	}
	return out
}

func seedCount(r *models.LinkRecord) int {
	if r.Seeders == nil {
		return -1
	}
	return *r.Seeders
}

func leechCount(r *models.LinkRecord) int {
	if r.Leechers == nil {
		return math.MaxInt
	}
	return *r.Leechers
}

// prefer reports whether candidate should replace existing as the
// representative of a title group: higher seeders, then lower leechers, then
// the shorter (more concise) title.
func prefer(existing, candidate *models.LinkRecord) bool {
	es, cs := seedCount(existing), seedCount(candidate)
	if cs != es {
		return cs > es
	}
	el, cl := leechCount(existing), leechCount(candidate)
	if cl != el {
		return cl < el
	}
	return len(candidate.Title) < len(existing.Title)
}

// Ranked merges near-duplicate releases for sites that expose swarm health.
// Records are grouped by normalized title and one representative per group is
// selected by seed/leech priority; representatives are emitted in that same
// priority order. Records without a normalized title bypass grouping and are
// appended unchanged.
func Ranked(records []models.LinkRecord) []models.LinkRecord {
	grouped := make(map[string]models.LinkRecord)
	keyless := make([]models.LinkRecord, 0)

	for _, record := range records {
		key := record.NormalizedTitle
		if key == "" {
			keyless = append(keyless, record)
			continue
		}

		existing, ok := grouped[key]
		if !ok || prefer(&existing, &record) {
			grouped[key] = record
		}
	}

	ranked := make([]models.LinkRecord, 0, len(grouped))
	for _, record := range grouped {
		ranked = append(ranked, record)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if sa, sb := seedCount(a), seedCount(b); sa != sb {
			return sa > sb
		}
		if la, lb := leechCount(a), leechCount(b); la != lb {
			return la < lb
		}
		if len(a.Title) != len(b.Title) {
			return len(a.Title) < len(b.Title)
		}
		return a.Title < b.Title
	})

	return append(ranked, keyless...)
}

// ForKind returns the aggregator for an aggregate kind
func ForKind(kind models.AggregateKind) func([]models.LinkRecord) []models.LinkRecord {
	if kind == models.AggregateRanked {
		return Ranked
	}
	return Generic
}
