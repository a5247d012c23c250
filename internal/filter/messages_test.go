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

func messageFixture() []models.Message {
	return []models.Message{
		{ID: "m1", Sender: "Ana", Subject: "Trip photos", Content: "sending the photos from rome", SentAt: day(3)},
		{ID: "m2", Sender: "Bank", Subject: "Statement ready", Content: "your august statement is ready", SentAt: day(10)},
		{ID: "m3", Sender: "Boss", Subject: "URGENT: report", Content: "need the quarterly report asap", Unread: true, SentAt: day(24)},
		{ID: "m4", Sender: "Ana", Subject: "Dinner", Content: "dinner on friday?", SentAt: day(23)},
	}
}

func TestFilterMessagesSenderAndKeyword(t *testing.T) {
	ic := intent.Context{
		PrimaryIntent: intent.Messaging,
		Entities:      []string{"ana", "photos"},
	}

	got := FilterMessages(ic, messageFixture(), DefaultLimits())

	require.NotEmpty(t, got)
	assert.Equal(t, "m1", got[0].Item.ID, "sender plus subject plus body hits rank first")
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFilterMessagesImportanceBoost(t *testing.T) {
	ic := intent.Context{
		PrimaryIntent: intent.Messaging,
		Entities:      []string{"report"},
	}

	got := FilterMessages(ic, messageFixture(), DefaultLimits())

	require.NotEmpty(t, got)
	assert.Equal(t, "m3", got[0].Item.ID)
}

func TestFilterMessagesImportanceAlone(t *testing.T) {
	// no keyword hit at all: importance keywords still surface the message
	ic := intent.Context{
		PrimaryIntent: intent.Messaging,
		Entities:      []string{"zzz"},
	}

	got := FilterMessages(ic, messageFixture(), DefaultLimits())

	require.Len(t, got, 1)
	assert.Equal(t, "m3", got[0].Item.ID)
	assert.Equal(t, MatchImportance, got[0].MatchType)
}

func TestFilterMessagesDateRangeHardExclusion(t *testing.T) {
	ic := intent.Context{
		PrimaryIntent: intent.Messaging,
		Entities:      []string{"ana"},
		DateRange: &extractor.DateRange{
			Start: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
			Label: "late august",
		},
	}

	got := FilterMessages(ic, messageFixture(), DefaultLimits())

	for _, record := range got {
		assert.True(t, ic.DateRange.Contains(record.Item.SentAt))
	}
	for _, record := range got {
		assert.NotEqual(t, "m1", record.Item.ID)
		assert.NotEqual(t, "m2", record.Item.ID)
	}
}

func TestFilterMessagesGeneralSample(t *testing.T) {
	ic := intent.Context{PrimaryIntent: intent.General}

	got := FilterMessages(ic, messageFixture(), DefaultLimits())

	require.Len(t, got, 2)
	assert.Equal(t, "m3", got[0].Item.ID)
	assert.Equal(t, "m4", got[1].Item.ID)
}
