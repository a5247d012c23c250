package filter

import (
	"sort"
	"strings"

	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

// importanceKeywords boost messages that look actionable.
var importanceKeywords = []string{"urgent", "important", "asap", "deadline", "critical", "reminder"}

// FilterMessages ranks received messages. Messages outside a requested date
// range are excluded outright.
func FilterMessages(ic intent.Context, messages []models.Message, limits Limits) []Record[models.Message] {
	if ic.PrimaryIntent == intent.General {
		return sampleMessages(messages, limits.Sample)
	}

	var results []Record[models.Message]

	for _, message := range messages {
		if ic.DateRange != nil && !ic.DateRange.Contains(message.SentAt) {
			continue
		}

		score := 0.0
		matchType := MatchType("")

		if hits := countContained(message.Sender, ic.Entities); hits > 0 {
			score += float64(hits) * weightTitleKeyword
			matchType = MatchKeyword
		}
		if hits := countContained(message.Subject, ic.Entities); hits > 0 {
			score += float64(hits) * weightTitleKeyword
			if matchType == "" {
				matchType = MatchKeyword
			}
		}
		if hits := countContained(message.Content, ic.Entities); hits > 0 {
			score += float64(hits) * weightKeyword
			if matchType == "" {
				matchType = MatchKeyword
			}
		}

		lowerBody := strings.ToLower(message.Subject + " " + message.Content)
		for _, keyword := range importanceKeywords {
			if strings.Contains(lowerBody, keyword) {
				score += weightImportance
				if matchType == "" {
					matchType = MatchImportance
				}
				break
			}
		}

		if message.Unread {
			score += weightUnread
		}

		if ic.DateRange != nil {
			score += weightDate
			if matchType == "" {
				matchType = MatchDateRange
			}
		}

		if score == 0 || matchType == "" {
			continue
		}

		results = append(results, Record[models.Message]{
			Item:      message,
			Score:     score,
			MatchType: matchType,
			Snippet:   snippetAround(message.Content, ic.Entities, snippetWidth),
		})
	}

	return finalize(results, func(a, b Record[models.Message]) bool {
		return a.Item.SentAt.After(b.Item.SentAt)
	}, limits.Messages)
}

func sampleMessages(messages []models.Message, limit int) []Record[models.Message] {
	sorted := make([]models.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentAt.After(sorted[j].SentAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	results := make([]Record[models.Message], 0, len(sorted))
	for _, message := range sorted {
		results = append(results, Record[models.Message]{
			Item:      message,
			MatchType: MatchSample,
			Snippet:   snippetAround(message.Content, nil, snippetWidth),
		})
	}
	return results
}
