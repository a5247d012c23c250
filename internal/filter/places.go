package filter

import (
	"sort"
	"strings"

	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

// FilterPlaces ranks saved places. Category is a hard property here: a place
// whose category conflicts with the location filter is excluded, as is any
// place below a requested minimum rating.
func FilterPlaces(ic intent.Context, places []models.Place, limits Limits) []Record[models.Place] {
	if ic.PrimaryIntent == intent.General {
		return samplePlaces(places, limits.Sample)
	}

	entitySet := entitySetOf(ic.Entities)
	var results []Record[models.Place]

	for _, place := range places {
		if ic.Location != nil {
			if ic.Location.Category != "" && !categoryMatches(place.Category, ic.Location.Category) {
				continue
			}
			if ic.Location.MinRating > 0 && place.Rating < ic.Location.MinRating {
				continue
			}
		}

		score := 0.0
		matchType := MatchType("")

		if titleExactMatch(place.Name, entitySet) {
			score += weightTitleExact
			matchType = MatchTitleExact
		} else if hits := countContained(place.Name, ic.Entities); hits > 0 {
			score += float64(hits) * weightTitleKeyword
			matchType = MatchKeyword
		}

		if ic.Location != nil && ic.Location.Category != "" && categoryMatches(place.Category, ic.Location.Category) {
			score += weightCategory
			if matchType == "" {
				matchType = MatchCategory
			}
		} else if hits := countContained(place.Category, ic.Entities); hits > 0 {
			score += float64(hits) * weightCategory
			if matchType == "" {
				matchType = MatchCategory
			}
		}

		if ic.Location != nil && ic.Location.City != "" && strings.EqualFold(place.City, ic.Location.City) {
			score += weightCity
			if matchType == "" {
				matchType = MatchLocation
			}
		}

		if matchType == "" {
			continue
		}

		// well-rated places surface first among equals
		score += place.Rating / 5.0

		results = append(results, Record[models.Place]{
			Item:      place,
			Score:     score,
			MatchType: matchType,
		})
	}

	return finalize(results, func(a, b Record[models.Place]) bool {
		return a.Item.LastVisit.After(b.Item.LastVisit)
	}, limits.Places)
}

func samplePlaces(places []models.Place, limit int) []Record[models.Place] {
	sorted := make([]models.Place, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastVisit.After(sorted[j].LastVisit)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	results := make([]Record[models.Place], 0, len(sorted))
	for _, place := range sorted {
		results = append(results, Record[models.Place]{Item: place, MatchType: MatchSample})
	}
	return results
}
