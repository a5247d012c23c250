package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/context-engine/internal/extractor"
)

var testNow = time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

func classify(t *testing.T, query string) Context {
	t.Helper()
	c := NewClassifier(0.1, 0.1)
	return c.Classify(extractor.Extract(query, testNow))
}

func TestClassifySingleIntent(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"scheduling", "What's on my calendar today?", Scheduling},
		{"finance", "How much did I spend at coffee shops last month?", Finance},
		{"messaging", "any unread emails from yesterday", Messaging},
		{"notes", "show me my notes about the garden", Notes},
		{"weather", "will it rain during the trip", Weather},
		{"navigation", "directions to the office", Navigation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(t, tt.query)
			assert.Equal(t, tt.want, got.PrimaryIntent)
			assert.Empty(t, got.SubIntents)
			assert.GreaterOrEqual(t, got.Confidence, 0.1)
			assert.Equal(t, MatchFuzzy, got.MatchType)
		})
	}
}

func TestClassifyGeneralBelowThreshold(t *testing.T) {
	got := classify(t, "asdkj qwoeiu")

	assert.Equal(t, General, got.PrimaryIntent)
	assert.Less(t, got.Confidence, 0.1)
	assert.Equal(t, MatchFallback, got.MatchType)
	assert.Empty(t, got.SubIntents)
}

func TestClassifyEmptyQuery(t *testing.T) {
	c := NewClassifier(0.1, 0.1)
	got := c.Classify(extractor.Extraction{Entities: []string{}})

	assert.Equal(t, General, got.PrimaryIntent)
	assert.Zero(t, got.Confidence)
	assert.Equal(t, MatchFallback, got.MatchType)
}

func TestClassifyMultiIntent(t *testing.T) {
	got := classify(t, "Show me coffee spending and coffee shops nearby")

	require.Equal(t, Multi, got.PrimaryIntent)
	assert.True(t, got.Is(Finance), "finance should be among the sub-intents")
	assert.True(t, got.Is(Places), "places should be among the sub-intents")
	require.NotNil(t, got.Location)
	assert.Equal(t, "coffee", got.Location.Category)
}

func TestClassifyMultiIntentDeterministicTieOrder(t *testing.T) {
	// both categories score one hit each; priority order breaks the tie
	first := classify(t, "meeting notes")
	second := classify(t, "notes meeting")

	require.Equal(t, Multi, first.PrimaryIntent)
	assert.Equal(t, first.SubIntents, second.SubIntents)
	assert.Equal(t, []Intent{Scheduling, Notes}, first.SubIntents)
}

func TestClassifyPatternDriven(t *testing.T) {
	t.Run("date range only", func(t *testing.T) {
		got := classify(t, "and this month?")

		assert.Equal(t, Scheduling, got.PrimaryIntent)
		assert.Equal(t, MatchPattern, got.MatchType)
		assert.Equal(t, patternConfidence, got.Confidence)
		require.NotNil(t, got.DateRange)
		assert.Equal(t, "this month", got.DateRange.Label)
	})

	t.Run("location only", func(t *testing.T) {
		got := classify(t, "anything good in lisbon")

		assert.Equal(t, Places, got.PrimaryIntent)
		assert.Equal(t, MatchPattern, got.MatchType)
		require.NotNil(t, got.Location)
		assert.Equal(t, "lisbon", got.Location.City)
	})
}

func TestClassifyExactMatch(t *testing.T) {
	// full table coverage for the weather category
	got := classify(t, "weather temperature rain raining sunny forecast snow wind humidity cold")

	assert.Equal(t, Weather, got.PrimaryIntent)
	assert.Equal(t, 1.0, got.Confidence)
	assert.Equal(t, MatchExact, got.MatchType)
}

func TestClassifyPassesExtractionThrough(t *testing.T) {
	got := classify(t, "How much did I spend at coffee shops last month?")

	assert.Equal(t, []string{"coffee", "shops", "spend"}, got.Entities)
	require.NotNil(t, got.DateRange)
	assert.Equal(t, "last month", got.DateRange.Label)
	require.NotNil(t, got.Location)
	assert.Equal(t, "coffee", got.Location.Category)
}
