package extractor

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Extraction holds everything the extractor could pull out of a raw query.
// Absent signals are nil; extraction never fails.
type Extraction struct {
	Entities  []string        `json:"entities"`
	DateRange *DateRange      `json:"date_range,omitempty"`
	Location  *LocationFilter `json:"location,omitempty"`
	Amount    *AmountRange    `json:"amount,omitempty"`
}

const minTokenLength = 3

// Stop words removed during entity extraction: determiners, question words,
// generic verbs and temporal filler that the date patterns already cover.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "into": {},
	"what": {}, "whats": {}, "when": {}, "where": {}, "which": {}, "who": {},
	"why": {}, "how": {}, "did": {}, "does": {}, "are": {}, "was": {},
	"were": {}, "been": {}, "have": {}, "has": {}, "had": {}, "can": {},
	"could": {}, "will": {}, "would": {}, "should": {}, "show": {},
	"tell": {}, "give": {}, "get": {}, "find": {}, "about": {}, "any": {},
	"all": {}, "some": {}, "there": {}, "please": {}, "much": {}, "many": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "you": {}, "your": {},
	"our": {}, "his": {}, "her": {}, "its": {}, "not": {}, "but": {},
	"than": {}, "then": {}, "over": {}, "under": {}, "between": {},
	"more": {}, "less": {}, "last": {}, "next": {}, "past": {},
	// temporal vocabulary is captured by the date-range patterns instead
	"today": {}, "yesterday": {}, "tomorrow": {}, "week": {}, "month": {},
	"year": {}, "day": {}, "days": {},
}

// Extract pulls keyword entities, an optional date range, an optional
// location filter and an optional amount range out of a raw query. The
// current instant is injected so date resolution is deterministic in tests.
func Extract(query string, now time.Time) Extraction {
	lower := strings.ToLower(query)
	return Extraction{
		Entities:  ExtractEntities(query),
		DateRange: ParseDateRange(lower, now),
		Location:  ParseLocation(lower),
		Amount:    ParseAmountRange(lower),
	}
}

// ExtractEntities tokenizes the query and returns the deduplicated, sorted
// set of lowercase keyword tokens with stop words and short tokens removed.
func ExtractEntities(query string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{})
	for _, token := range tokens {
		if len(token) < minTokenLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		seen[token] = struct{}{}
	}

	entities := make([]string, 0, len(seen))
	for token := range seen {
		entities = append(entities, token)
	}
	sort.Strings(entities)
	return entities
}
