package filter

import (
	"sort"

	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

// FilterEvents ranks scheduled items. Events outside a requested date range
// are excluded outright; inside a date window the result is uncapped so a
// day or week view is never truncated. Ties sort chronologically, so a pure
// date query yields the schedule in time order.
func FilterEvents(ic intent.Context, events []models.Event, limits Limits) []Record[models.Event] {
	if ic.PrimaryIntent == intent.General {
		return sampleEvents(events, limits.Sample)
	}

	entitySet := entitySetOf(ic.Entities)
	var results []Record[models.Event]

	for _, event := range events {
		if ic.DateRange != nil && !ic.DateRange.Contains(event.StartTime) {
			continue
		}

		score := 0.0
		matchType := MatchType("")

		if titleExactMatch(event.Title, entitySet) {
			score += weightTitleExact
			matchType = MatchTitleExact
		} else if hits := countContained(event.Title, ic.Entities); hits > 0 {
			score += float64(hits) * weightTitleKeyword
			matchType = MatchKeyword
		}

		if hits := countContained(event.Description, ic.Entities); hits > 0 {
			score += float64(hits) * weightKeyword
			if matchType == "" {
				matchType = MatchKeyword
			}
		}
		if hits := countContained(event.Location, ic.Entities); hits > 0 {
			score += float64(hits) * weightKeyword
			if matchType == "" {
				matchType = MatchLocation
			}
		}

		if ic.DateRange != nil {
			score += weightDate
			if matchType == "" {
				matchType = MatchDateRange
			}
		}

		if score == 0 {
			continue
		}

		results = append(results, Record[models.Event]{
			Item:      event,
			Score:     score,
			MatchType: matchType,
		})
	}

	limit := limits.Events
	if ic.DateRange != nil {
		limit = 0
	}
	return finalize(results, func(a, b Record[models.Event]) bool {
		return a.Item.StartTime.Before(b.Item.StartTime)
	}, limit)
}

func sampleEvents(events []models.Event, limit int) []Record[models.Event] {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	results := make([]Record[models.Event], 0, len(sorted))
	for _, event := range sorted {
		results = append(results, Record[models.Event]{Item: event, MatchType: MatchSample})
	}
	return results
}
