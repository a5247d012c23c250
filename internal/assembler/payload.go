package assembler

import (
	"encoding/json"
	"time"

	"github.com/xaenox/context-engine/internal/filter"
	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/models"
)

// FilteredContext aggregates the per-domain filter outputs for one query.
// A nil slice means the domain was not relevant to the query.
type FilteredContext struct {
	Notes        []filter.Record[models.Note]
	Events       []filter.Record[models.Event]
	Places       []filter.Record[models.Place]
	Messages     []filter.Record[models.Message]
	Transactions *filter.TransactionResult
}

// FollowUpContext captures how the current query relates to the previous
// conversation turn.
type FollowUpContext struct {
	IsFollowUp        bool     `json:"is_follow_up"`
	PreviousTopic     []string `json:"previous_topic,omitempty"`
	PreviousTimeframe string   `json:"previous_timeframe,omitempty"`
}

// Metadata describes the query interpretation the payload was built from.
type Metadata struct {
	GeneratedAt    time.Time        `json:"generated_at"`
	Intent         intent.Intent    `json:"intent"`
	SubIntents     []intent.Intent  `json:"sub_intents,omitempty"`
	Confidence     float64          `json:"confidence"`
	MatchType      intent.MatchType `json:"match_type"`
	DateRangeLabel string           `json:"date_range_label"`
	FollowUp       FollowUpContext  `json:"follow_up"`
}

// Turn is one bounded conversation turn carried into the payload.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Per-domain payload entries carry only the fields the model needs, never
// the full raw record.

type NoteEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	Tags      []string  `json:"tags,omitempty"`
	Score     float64   `json:"score"`
	MatchType string    `json:"match_type"`
	CreatedAt time.Time `json:"created_at"`
}

type EventEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location,omitempty"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	AllDay    bool      `json:"all_day"`
	Score     float64   `json:"score"`
	MatchType string    `json:"match_type"`
}

type PlaceEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	City      string  `json:"city"`
	Rating    float64 `json:"rating"`
	Score     float64 `json:"score"`
	MatchType string  `json:"match_type"`
}

type MessageEntry struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject,omitempty"`
	Snippet   string    `json:"snippet"`
	Unread    bool      `json:"unread"`
	SentAt    time.Time `json:"sent_at"`
	Score     float64   `json:"score"`
	MatchType string    `json:"match_type"`
}

type TransactionEntry struct {
	ID           string    `json:"id"`
	Merchant     string    `json:"merchant"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Date         time.Time `json:"date"`
	Score        float64   `json:"score"`
	MatchType    string    `json:"match_type"`
	MerchantType string    `json:"merchant_type,omitempty"`
	Products     []string  `json:"products,omitempty"`
}

// StructuredPayload is the final serializable object handed to the caller
// that owns the language-model request.
type StructuredPayload struct {
	Metadata         Metadata           `json:"metadata"`
	Notes            []NoteEntry        `json:"notes,omitempty"`
	Events           []EventEntry       `json:"events,omitempty"`
	Places           []PlaceEntry       `json:"places,omitempty"`
	Messages         []MessageEntry     `json:"messages,omitempty"`
	Transactions     []TransactionEntry `json:"transactions,omitempty"`
	TransactionStats *filter.Stats      `json:"transaction_stats,omitempty"`
	// TransactionLookup flags whether merchant-semantic boosts were applied
	// ("semantic") or the lookup degraded ("keyword_only").
	TransactionLookup filter.LookupMode `json:"transaction_lookup,omitempty"`
	History           []Turn            `json:"history,omitempty"`
}

// JSON serializes the payload. All collections are slices in fixed order, so
// identical inputs produce byte-identical output.
func (p *StructuredPayload) JSON() ([]byte, error) {
	return json.Marshal(p)
}
