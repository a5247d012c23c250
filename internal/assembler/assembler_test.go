package assembler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/context-engine/internal/extractor"
	"github.com/xaenox/context-engine/internal/filter"
	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

var testNow = time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

func turn(isUser bool, content string, minutesAgo int) models.ConversationTurn {
	return models.ConversationTurn{
		IsUser:    isUser,
		Content:   content,
		Timestamp: testNow.Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

func TestAssembleMetadata(t *testing.T) {
	ic := intent.Context{
		PrimaryIntent: intent.Finance,
		Entities:      []string{"coffee"},
		Confidence:    0.1,
		MatchType:     intent.MatchFuzzy,
		DateRange:     &extractor.DateRange{Start: testNow, End: testNow.AddDate(0, 1, 0), Label: "this month"},
	}

	payload := Assemble(FilteredContext{}, ic, nil, testNow, 0)

	assert.Equal(t, testNow, payload.Metadata.GeneratedAt)
	assert.Equal(t, intent.Finance, payload.Metadata.Intent)
	assert.Equal(t, 0.1, payload.Metadata.Confidence)
	assert.Equal(t, "this month", payload.Metadata.DateRangeLabel)
	assert.False(t, payload.Metadata.FollowUp.IsFollowUp)
}

func TestAssembleDateRangeLabelNone(t *testing.T) {
	payload := Assemble(FilteredContext{}, intent.Context{PrimaryIntent: intent.General}, nil, testNow, 0)

	assert.Equal(t, "none", payload.Metadata.DateRangeLabel)
}

func TestAssembleFollowUp(t *testing.T) {
	history := []models.ConversationTurn{
		turn(true, "What about last month's travel expenses?", 5),
		turn(false, "You spent $420 on travel last month.", 4),
		turn(true, "and this month?", 0),
	}

	payload := Assemble(FilteredContext{}, intent.Context{PrimaryIntent: intent.Scheduling}, history, testNow, 0)

	followUp := payload.Metadata.FollowUp
	assert.True(t, followUp.IsFollowUp)
	assert.Contains(t, followUp.PreviousTopic, "travel")
	assert.Contains(t, followUp.PreviousTopic, "expenses")
	assert.Equal(t, "last month", followUp.PreviousTimeframe)
}

func TestAssembleNotFollowUpOnFirstQuery(t *testing.T) {
	history := []models.ConversationTurn{
		turn(true, "What's on my calendar today?", 0),
	}

	payload := Assemble(FilteredContext{}, intent.Context{PrimaryIntent: intent.Scheduling}, history, testNow, 0)

	assert.False(t, payload.Metadata.FollowUp.IsFollowUp)
	assert.Empty(t, payload.Metadata.FollowUp.PreviousTopic)
}

func TestAssembleHistoryWindow(t *testing.T) {
	var history []models.ConversationTurn
	for i := 0; i < 10; i++ {
		history = append(history, turn(i%2 == 0, string(rune('a'+i)), 10-i))
	}

	payload := Assemble(FilteredContext{}, intent.Context{PrimaryIntent: intent.General}, history, testNow, 4)

	require.Len(t, payload.History, 4)
	assert.Equal(t, "g", payload.History[0].Content, "only the most recent turns are carried")
	assert.Equal(t, "j", payload.History[3].Content)
	assert.Equal(t, "user", payload.History[0].Role)
	assert.Equal(t, "assistant", payload.History[1].Role)
}

func TestAssembleReducesRecords(t *testing.T) {
	fc := FilteredContext{
		Notes: []filter.Record[models.Note]{
			{
				Item: models.Note{
					ID:        "n1",
					Title:     "Garden",
					Content:   "a very long body that must not be carried into the payload",
					Tags:      []string{"home"},
					CreatedAt: testNow,
				},
				Score:     1.0,
				MatchType: filter.MatchTitleExact,
				Snippet:   "a very long body",
			},
		},
		Transactions: &filter.TransactionResult{
			Records: []filter.Record[models.Transaction]{
				{
					Item:         models.Transaction{ID: "t1", Merchant: "Starbucks", Category: "coffee", Amount: 5.40, Currency: "USD", Date: testNow},
					Score:        1.0,
					MatchType:    filter.MatchMerchantSemantic,
					MerchantType: "Coffee Shop",
					Products:     []string{"coffee"},
				},
			},
			Stats: &filter.Stats{Count: 1, Total: 5.40, Average: 5.40, Max: 5.40, Min: 5.40},
			Mode:  filter.LookupSemantic,
		},
	}

	payload := Assemble(fc, intent.Context{PrimaryIntent: intent.Multi}, nil, testNow, 0)

	require.Len(t, payload.Notes, 1)
	assert.Equal(t, "a very long body", payload.Notes[0].Snippet)
	require.Len(t, payload.Transactions, 1)
	assert.Equal(t, "Coffee Shop", payload.Transactions[0].MerchantType)
	assert.Equal(t, filter.LookupSemantic, payload.TransactionLookup)
	require.NotNil(t, payload.TransactionStats)
	assert.Equal(t, 1, payload.TransactionStats.Count)
}

func TestAssembleDeterministicJSON(t *testing.T) {
	history := []models.ConversationTurn{
		turn(true, "coffee spending last month", 2),
		turn(false, "here you go", 1),
		turn(true, "and this month?", 0),
	}
	ic := intent.Context{PrimaryIntent: intent.Finance, Entities: []string{"coffee"}, Confidence: 0.1, MatchType: intent.MatchFuzzy}

	first, err := Assemble(FilteredContext{}, ic, history, testNow, 6).JSON()
	require.NoError(t, err)
	second, err := Assemble(FilteredContext{}, ic, history, testNow, 6).JSON()
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must serialize byte-identically")
}

func TestAssembleDoesNotMutateInputs(t *testing.T) {
	history := []models.ConversationTurn{
		turn(true, "first", 2),
		turn(true, "second", 0),
	}
	original := make([]models.ConversationTurn, len(history))
	copy(original, history)

	Assemble(FilteredContext{}, intent.Context{PrimaryIntent: intent.General}, history, testNow, 1)

	assert.Equal(t, original, history)
}
