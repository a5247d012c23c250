package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/context-engine/internal/extractor"
	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

func eventFixture() []models.Event {
	at := func(d, h int) time.Time { return time.Date(2026, 8, d, h, 0, 0, 0, time.UTC) }
	return []models.Event{
		{ID: "e1", Title: "Dentist", StartTime: at(25, 16), EndTime: at(25, 17)},
		{ID: "e2", Title: "Standup", StartTime: at(25, 9), EndTime: at(25, 9).Add(15 * time.Minute)},
		{ID: "e3", Title: "Lunch with Ana", StartTime: at(25, 12), EndTime: at(25, 13)},
		{ID: "e4", Title: "Planning", StartTime: at(26, 10), EndTime: at(26, 11)},
		{ID: "e5", Title: "Flight to Rome", StartTime: at(30, 7), EndTime: at(30, 10)},
	}
}

func todayRange() *extractor.DateRange {
	start := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	return &extractor.DateRange{Start: start, End: start.AddDate(0, 0, 1), Label: "today"}
}

func TestFilterEventsDateWindowChronological(t *testing.T) {
	ic := intent.Context{
		PrimaryIntent: intent.Scheduling,
		Entities:      []string{"calendar"},
		DateRange:     todayRange(),
	}

	got := FilterEvents(ic, eventFixture(), DefaultLimits())

	require.Len(t, got, 3, "only today's events survive")
	// equal scores, so the tie-break puts the day in time order
	assert.Equal(t, "e2", got[0].Item.ID)
	assert.Equal(t, "e3", got[1].Item.ID)
	assert.Equal(t, "e1", got[2].Item.ID)
	for _, record := range got {
		assert.True(t, ic.DateRange.Contains(record.Item.StartTime))
		assert.Equal(t, MatchDateRange, record.MatchType)
	}
}

func TestFilterEventsDateWindowUncapped(t *testing.T) {
	events := make([]models.Event, 30)
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	for i := range events {
		events[i] = models.Event{
			ID:        string(rune('a' + i)),
			Title:     "Slot",
			StartTime: base.Add(time.Duration(i) * 30 * time.Minute),
			EndTime:   base.Add(time.Duration(i+1) * 30 * time.Minute),
		}
	}
	ic := intent.Context{PrimaryIntent: intent.Scheduling, DateRange: todayRange()}

	got := FilterEvents(ic, events, DefaultLimits())

	assert.Len(t, got, 30, "a date window is never truncated")
}

func TestFilterEventsKeywordRanking(t *testing.T) {
	ic := intent.Context{
		PrimaryIntent: intent.Scheduling,
		Entities:      []string{"flight", "rome"},
	}

	got := FilterEvents(ic, eventFixture(), DefaultLimits())

	require.NotEmpty(t, got)
	assert.Equal(t, "e5", got[0].Item.ID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFilterEventsGeneralSample(t *testing.T) {
	ic := intent.Context{PrimaryIntent: intent.General}

	got := FilterEvents(ic, eventFixture(), DefaultLimits())

	require.Len(t, got, 2)
	assert.Equal(t, MatchSample, got[0].MatchType)
}
