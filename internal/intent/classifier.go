package intent

import (
	"sort"

	"github.com/xaenox/context-engine/internal/extractor"
)

// keywordTables maps each intent category to its fixed keyword table. The
// score for a category is |entities ∩ table| / |table|.
var keywordTables = map[Intent][]string{
	Scheduling: {"calendar", "meeting", "meetings", "schedule", "scheduled", "appointment", "event", "events", "busy", "agenda"},
	Messaging:  {"message", "messages", "email", "emails", "inbox", "unread", "reply", "sender", "text", "chat"},
	Notes:      {"note", "notes", "wrote", "written", "memo", "remember", "saved", "idea", "list", "journal"},
	Places:     {"nearby", "restaurant", "cafe", "place", "places", "visit", "visited", "location", "around", "rated"},
	Navigation: {"directions", "navigate", "route", "drive", "driving", "distance", "far", "map", "traffic", "commute"},
	Weather:    {"weather", "temperature", "rain", "raining", "sunny", "forecast", "snow", "wind", "humidity", "cold"},
	Finance:    {"spend", "spent", "spending", "money", "cost", "paid", "expenses", "budget", "transactions", "price"},
}

// categoryPriority fixes the tie-break order for equal scores.
var categoryPriority = []Intent{Scheduling, Messaging, Notes, Places, Navigation, Weather, Finance}

// patternConfidence is assigned when the decision is driven by the
// date/location extractor instead of keyword overlap.
const patternConfidence = 0.5

type Classifier struct {
	threshold    float64
	subThreshold float64
}

// NewClassifier returns a classifier with the given primary and sub-intent
// confidence thresholds.
func NewClassifier(threshold, subThreshold float64) *Classifier {
	return &Classifier{
		threshold:    threshold,
		subThreshold: subThreshold,
	}
}

// Classify scores the extracted entities against every keyword table and
// produces the intent context for the query. The date range, location filter
// and amount range are passed through from the extractor unchanged.
func (c *Classifier) Classify(ex extractor.Extraction) Context {
	result := Context{
		Entities:  ex.Entities,
		DateRange: ex.DateRange,
		Location:  ex.Location,
		Amount:    ex.Amount,
	}

	entitySet := make(map[string]struct{}, len(ex.Entities))
	for _, e := range ex.Entities {
		entitySet[e] = struct{}{}
	}

	scores := make(map[Intent]float64, len(keywordTables))
	var topIntent Intent
	var topScore float64
	for _, category := range categoryPriority {
		table := keywordTables[category]
		hits := 0
		for _, keyword := range table {
			if _, ok := entitySet[keyword]; ok {
				hits++
			}
		}
		score := float64(hits) / float64(len(table))
		scores[category] = score
		// strict comparison keeps the priority order deterministic on ties
		if score > topScore {
			topScore = score
			topIntent = category
		}
	}

	var above []Intent
	for _, category := range categoryPriority {
		if scores[category] >= c.subThreshold && scores[category] > 0 {
			above = append(above, category)
		}
	}
	sort.SliceStable(above, func(i, j int) bool {
		return scores[above[i]] > scores[above[j]]
	})

	switch {
	case len(above) >= 2:
		result.PrimaryIntent = Multi
		result.SubIntents = above
		result.Confidence = topScore
		result.MatchType = matchTypeFor(topScore)
	case topScore >= c.threshold:
		result.PrimaryIntent = topIntent
		result.Confidence = topScore
		result.MatchType = matchTypeFor(topScore)
	case ex.Location != nil && (ex.Location.Category != "" || ex.Location.City != ""):
		result.PrimaryIntent = Places
		result.Confidence = patternConfidence
		result.MatchType = MatchPattern
	case ex.DateRange != nil:
		result.PrimaryIntent = Scheduling
		result.Confidence = patternConfidence
		result.MatchType = MatchPattern
	default:
		result.PrimaryIntent = General
		result.Confidence = topScore
		result.MatchType = MatchFallback
	}

	return result
}

func matchTypeFor(score float64) MatchType {
	if score >= 1.0 {
		return MatchExact
	}
	return MatchFuzzy
}
