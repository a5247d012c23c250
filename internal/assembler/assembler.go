// Package assembler merges the filtered domain results into the structured
// payload handed to the language-model caller. Assembly is pure: no I/O and
// no mutation of its inputs.
package assembler

import (
	"strings"
	"time"

	"github.com/xaenox/context-engine/internal/extractor"
	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

// DefaultHistoryWindow bounds how many conversation turns are carried into
// the payload when the caller does not configure one.
const DefaultHistoryWindow = 6

// Assemble builds the structured payload from the filtered context, the
// intent context and the conversation history. The history is expected to
// contain the current user turn as its last entry; now is injected for
// deterministic output.
func Assemble(fc FilteredContext, ic intent.Context, history []models.ConversationTurn, now time.Time, historyWindow int) *StructuredPayload {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}

	payload := &StructuredPayload{
		Metadata: Metadata{
			GeneratedAt:    now,
			Intent:         ic.PrimaryIntent,
			SubIntents:     ic.SubIntents,
			Confidence:     ic.Confidence,
			MatchType:      ic.MatchType,
			DateRangeLabel: dateRangeLabel(ic),
			FollowUp:       followUp(history, now),
		},
		History: boundedHistory(history, historyWindow),
	}

	for _, record := range fc.Notes {
		payload.Notes = append(payload.Notes, NoteEntry{
			ID:        record.Item.ID,
			Title:     record.Item.Title,
			Snippet:   record.Snippet,
			Tags:      record.Item.Tags,
			Score:     record.Score,
			MatchType: string(record.MatchType),
			CreatedAt: record.Item.CreatedAt,
		})
	}
	for _, record := range fc.Events {
		payload.Events = append(payload.Events, EventEntry{
			ID:        record.Item.ID,
			Title:     record.Item.Title,
			Location:  record.Item.Location,
			StartTime: record.Item.StartTime,
			EndTime:   record.Item.EndTime,
			AllDay:    record.Item.AllDay,
			Score:     record.Score,
			MatchType: string(record.MatchType),
		})
	}
	for _, record := range fc.Places {
		payload.Places = append(payload.Places, PlaceEntry{
			ID:        record.Item.ID,
			Name:      record.Item.Name,
			Category:  record.Item.Category,
			City:      record.Item.City,
			Rating:    record.Item.Rating,
			Score:     record.Score,
			MatchType: string(record.MatchType),
		})
	}
	for _, record := range fc.Messages {
		payload.Messages = append(payload.Messages, MessageEntry{
			ID:        record.Item.ID,
			Sender:    record.Item.Sender,
			Subject:   record.Item.Subject,
			Snippet:   record.Snippet,
			Unread:    record.Item.Unread,
			SentAt:    record.Item.SentAt,
			Score:     record.Score,
			MatchType: string(record.MatchType),
		})
	}
	if fc.Transactions != nil {
		for _, record := range fc.Transactions.Records {
			payload.Transactions = append(payload.Transactions, TransactionEntry{
				ID:           record.Item.ID,
				Merchant:     record.Item.Merchant,
				Category:     record.Item.Category,
				Amount:       record.Item.Amount,
				Currency:     record.Item.Currency,
				Date:         record.Item.Date,
				Score:        record.Score,
				MatchType:    string(record.MatchType),
				MerchantType: record.MerchantType,
				Products:     record.Products,
			})
		}
		payload.TransactionStats = fc.Transactions.Stats
		payload.TransactionLookup = fc.Transactions.Mode
	}

	return payload
}

func dateRangeLabel(ic intent.Context) string {
	if ic.DateRange == nil {
		return "none"
	}
	return ic.DateRange.Label
}

// followUp inspects the prior user turns. The query is a follow-up when the
// history holds more than one user turn; topic and timeframe are extracted
// from the most recent user turn before the current one.
func followUp(history []models.ConversationTurn, now time.Time) FollowUpContext {
	var userTurns []models.ConversationTurn
	for _, turn := range history {
		if turn.IsUser {
			userTurns = append(userTurns, turn)
		}
	}
	if len(userTurns) < 2 {
		return FollowUpContext{}
	}

	previous := userTurns[len(userTurns)-2]
	ctx := FollowUpContext{
		IsFollowUp:    true,
		PreviousTopic: extractor.ExtractEntities(previous.Content),
	}
	if dateRange := extractor.ParseDateRange(strings.ToLower(previous.Content), now); dateRange != nil {
		ctx.PreviousTimeframe = dateRange.Label
	}
	return ctx
}

func boundedHistory(history []models.ConversationTurn, window int) []Turn {
	start := len(history) - window
	if start < 0 {
		start = 0
	}
	turns := make([]Turn, 0, len(history)-start)
	for _, turn := range history[start:] {
		role := "assistant"
		if turn.IsUser {
			role = "user"
		}
		turns = append(turns, Turn{Role: role, Content: turn.Content})
	}
	return turns
}
