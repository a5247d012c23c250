package intent

import (
	"github.com/xaenox/context-engine/internal/extractor"
)

// Intent is the coarse category of what a query is about.
type Intent string

const (
	Scheduling Intent = "scheduling"
	Messaging  Intent = "messaging"
	Notes      Intent = "notes"
	Places     Intent = "places"
	Navigation Intent = "navigation"
	Weather    Intent = "weather"
	Finance    Intent = "finance"
	Multi      Intent = "multi"
	General    Intent = "general"
)

// MatchType records how the primary intent was determined.
type MatchType string

const (
	// MatchExact means the top category scored full table coverage.
	MatchExact MatchType = "exact"
	// MatchFuzzy means a partial but above-threshold keyword match.
	MatchFuzzy MatchType = "fuzzy"
	// MatchPattern means the decision was driven by the date/location
	// extractor rather than keyword overlap.
	MatchPattern MatchType = "pattern"
	// MatchFallback means no signal was strong enough and the intent
	// defaulted to general.
	MatchFallback MatchType = "fallback"
)

// Context is the immutable interpretation of one query, produced once by the
// classifier and consumed by the domain filters and the assembler.
type Context struct {
	PrimaryIntent Intent                    `json:"primary_intent"`
	SubIntents    []Intent                  `json:"sub_intents,omitempty"`
	Entities      []string                  `json:"entities"`
	DateRange     *extractor.DateRange      `json:"date_range,omitempty"`
	Location      *extractor.LocationFilter `json:"location,omitempty"`
	Amount        *extractor.AmountRange    `json:"amount,omitempty"`
	Confidence    float64                   `json:"confidence"`
	MatchType     MatchType                 `json:"match_type"`
}

// Is reports whether the context covers the given intent, either as the
// primary or as one of the sub-intents of a multi-intent query.
func (c Context) Is(in Intent) bool {
	if c.PrimaryIntent == in {
		return true
	}
	for _, sub := range c.SubIntents {
		if sub == in {
			return true
		}
	}
	return false
}
