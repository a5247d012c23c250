package filter

import (
	"sort"
	"strings"

	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

const snippetWidth = 120

// FilterNotes ranks the user's notes against the intent context. Notes
// outside a requested date range are excluded outright.
func FilterNotes(ic intent.Context, notes []models.Note, limits Limits) []Record[models.Note] {
	if ic.PrimaryIntent == intent.General {
		return sampleNotes(notes, limits.Sample)
	}

	entitySet := entitySetOf(ic.Entities)
	var results []Record[models.Note]

	for _, note := range notes {
		if ic.DateRange != nil && !ic.DateRange.Contains(note.CreatedAt) {
			continue
		}

		score := 0.0
		matchType := MatchType("")

		if titleExactMatch(note.Title, entitySet) {
			score += weightTitleExact
			matchType = MatchTitleExact
		} else if hits := countContained(note.Title, ic.Entities); hits > 0 {
			score += float64(hits) * weightTitleKeyword
			matchType = MatchKeyword
		}

		for _, tag := range note.Tags {
			if _, ok := entitySet[strings.ToLower(tag)]; ok {
				score += weightCategory
				if matchType == "" {
					matchType = MatchCategory
				}
				break
			}
		}

		if hits := countContained(note.Content, ic.Entities); hits > 0 {
			score += float64(hits) * weightKeyword
			if matchType == "" {
				matchType = MatchKeyword
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

		results = append(results, Record[models.Note]{
			Item:      note,
			Score:     score,
			MatchType: matchType,
			Snippet:   snippetAround(note.Content, ic.Entities, snippetWidth),
		})
	}

	return finalize(results, func(a, b Record[models.Note]) bool {
		return a.Item.CreatedAt.After(b.Item.CreatedAt)
	}, limits.Notes)
}

func sampleNotes(notes []models.Note, limit int) []Record[models.Note] {
	sorted := make([]models.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	results := make([]Record[models.Note], 0, len(sorted))
	for _, note := range sorted {
		results = append(results, Record[models.Note]{
			Item:      note,
			MatchType: MatchSample,
			Snippet:   snippetAround(note.Content, nil, snippetWidth),
		})
	}
	return results
}
