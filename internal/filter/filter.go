// Package filter holds the per-domain relevance filters. Each filter applies
// the hard constraints from the intent context first (date range, category
// conflicts), then ranks the survivors with additive weights, normalizes the
// scores into [0,1] and caps the list at a per-domain limit.
package filter

import (
	"sort"
	"strings"
)

// MatchType explains why a record matched.
type MatchType string

const (
	MatchTitleExact       MatchType = "title_exact"
	MatchKeyword          MatchType = "keyword"
	MatchDateRange        MatchType = "date_range"
	MatchCategory         MatchType = "category_match"
	MatchLocation         MatchType = "location_match"
	MatchImportance       MatchType = "importance"
	MatchAmountRange      MatchType = "amount_range"
	MatchMerchantSemantic MatchType = "merchant_semantic"
	// MatchSample marks records sampled for a general query that carried no
	// usable signal.
	MatchSample MatchType = "sample"
)

// Record wraps one domain record with its relevance score, the reason it
// matched and optional domain-specific annotations. Scores are normalized
// into [0,1] within one result list.
type Record[T any] struct {
	Item      T         `json:"item"`
	Score     float64   `json:"score"`
	MatchType MatchType `json:"match_type"`

	// Snippet is set for text-bearing domains (notes, messages).
	Snippet string `json:"snippet,omitempty"`
	// MerchantType and Products are set for transactions when the merchant
	// lookup contributed a semantic match.
	MerchantType string   `json:"merchant_type,omitempty"`
	Products     []string `json:"products,omitempty"`
}

// Limits holds the per-domain result caps.
type Limits struct {
	Notes        int
	Events       int
	Places       int
	Messages     int
	Transactions int
	// Sample is the per-domain cap used for general (unclassified) queries.
	Sample int
}

// DefaultLimits returns the standard per-domain caps.
func DefaultLimits() Limits {
	return Limits{
		Notes:        8,
		Events:       10,
		Places:       8,
		Messages:     10,
		Transactions: 10,
		Sample:       2,
	}
}

// Additive scoring weights, shared across domains. Changing any of these
// changes golden test output.
const (
	weightTitleExact   = 5.0
	weightTitleKeyword = 2.5
	weightKeyword      = 2.0
	weightCategory     = 2.5
	weightDate         = 3.0
	weightCity         = 2.5
	weightImportance   = 2.0
	weightAmountRange  = 2.0
	weightSemantic     = 3.0
	weightUnread       = 0.5
)

// finalize sorts by raw score descending (ties broken by the domain's
// secondary key), caps the list and normalizes scores by the list maximum.
func finalize[T any](records []Record[T], tieLess func(a, b Record[T]) bool, limit int) []Record[T] {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score != records[j].Score {
			return records[i].Score > records[j].Score
		}
		return tieLess(records[i], records[j])
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	if len(records) > 0 && records[0].Score > 0 {
		max := records[0].Score
		for i := range records {
			records[i].Score = records[i].Score / max
		}
	}
	return records
}

// titleExactMatch reports whether every word of the title appears in the
// entity set. Empty titles never match.
func titleExactMatch(title string, entitySet map[string]struct{}) bool {
	words := strings.Fields(strings.ToLower(title))
	if len(words) == 0 {
		return false
	}
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:")
		if _, ok := entitySet[word]; !ok {
			return false
		}
	}
	return true
}

// countContained returns how many entities appear as substrings of text.
func countContained(text string, entities []string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, entity := range entities {
		if strings.Contains(lower, entity) {
			hits++
		}
	}
	return hits
}

// snippetAround extracts a short window of text centered on the first entity
// hit, or the head of the text when nothing matched.
func snippetAround(text string, entities []string, width int) string {
	if len(text) <= width {
		return text
	}
	lower := strings.ToLower(text)
	for _, entity := range entities {
		idx := strings.Index(lower, entity)
		if idx < 0 {
			continue
		}
		start := idx - width/2
		if start < 0 {
			start = 0
		}
		end := start + width
		if end > len(text) {
			end = len(text)
			start = end - width
		}
		return strings.TrimSpace(text[start:end])
	}
	return strings.TrimSpace(text[:width])
}

// categoryAliases folds synonymous category names together.
var categoryAliases = map[string][]string{
	"coffee":     {"cafe", "coffee shop", "coffee & tea"},
	"restaurant": {"dining", "food", "eating out"},
	"grocery":    {"supermarket", "groceries"},
	"gym":        {"fitness", "sports"},
	"bar":        {"pub", "nightlife"},
	"hotel":      {"lodging", "travel"},
	"pharmacy":   {"drugstore", "health"},
	"bank":       {"atm", "banking"},
}

// categoryMatches reports whether a record's own category satisfies the
// filter category, honoring aliases and partial names either way.
func categoryMatches(recordCategory, filterCategory string) bool {
	record := strings.ToLower(strings.TrimSpace(recordCategory))
	want := strings.ToLower(strings.TrimSpace(filterCategory))
	if record == "" || want == "" {
		return false
	}
	if record == want || strings.Contains(record, want) || strings.Contains(want, record) {
		return true
	}
	for _, alias := range categoryAliases[want] {
		if record == alias || strings.Contains(record, alias) {
			return true
		}
	}
	return false
}

func entitySetOf(entities []string) map[string]struct{} {
	set := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		set[e] = struct{}{}
	}
	return set
}
