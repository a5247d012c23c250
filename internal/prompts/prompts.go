// Package prompts maps a detected intent to the instruction template paired
// with the assembled context. Selection is a pure lookup, no scoring.
package prompts

import (
	"strings"

	"github.com/xaenox/context-engine/internal/intent"
)

// TemplateID identifies one instruction template.
type TemplateID string

const (
	TemplateScheduling TemplateID = "scheduling_assistant"
	TemplateMessaging  TemplateID = "messaging_assistant"
	TemplateNotes      TemplateID = "notes_assistant"
	TemplatePlaces     TemplateID = "places_assistant"
	TemplateNavigation TemplateID = "navigation_assistant"
	TemplateWeather    TemplateID = "weather_assistant"
	TemplateFinance    TemplateID = "finance_assistant"
	// TemplateComposite is used for multi-intent queries; its text is the
	// concatenation of the relevant per-intent templates.
	TemplateComposite TemplateID = "multi_intent"
	TemplateGeneral   TemplateID = "general_assistant"
)

var byIntent = map[intent.Intent]TemplateID{
	intent.Scheduling: TemplateScheduling,
	intent.Messaging:  TemplateMessaging,
	intent.Notes:      TemplateNotes,
	intent.Places:     TemplatePlaces,
	intent.Navigation: TemplateNavigation,
	intent.Weather:    TemplateWeather,
	intent.Finance:    TemplateFinance,
	intent.Multi:      TemplateComposite,
	intent.General:    TemplateGeneral,
}

var templates = map[TemplateID]string{
	TemplateScheduling: `You are a scheduling assistant. Answer using only the scheduled items in the provided context.
List items in chronological order, mention times explicitly, and point out conflicts or free slots when asked.`,

	TemplateMessaging: `You are a messaging assistant. Answer using only the messages in the provided context.
Summarize senders and subjects, surface unread or urgent messages first, and never invent message content.`,

	TemplateNotes: `You are a notes assistant. Answer using only the notes in the provided context.
Quote the relevant snippet when it answers the question directly and reference notes by title.`,

	TemplatePlaces: `You are a places assistant. Answer using only the places in the provided context.
Prefer higher-rated and more recently visited places, and mention the city and category of each suggestion.`,

	TemplateNavigation: `You are a navigation assistant. Answer using the places in the provided context as destinations.
Be concise about where each place is; do not invent travel times you cannot derive from the context.`,

	TemplateWeather: `You are a planning assistant. The context contains the user's scheduled items for the period in question.
Relate your answer to those plans; do not fabricate forecast data that is not in the context.`,

	TemplateFinance: `You are a personal finance assistant. Answer using only the transactions and statistics in the provided context.
Use the precomputed totals and averages rather than recomputing them, and state amounts with their currency.`,

	TemplateGeneral: `You are a personal assistant with access to a small sample of the user's notes, schedule, places, messages and transactions.
Answer helpfully from that context and say so plainly when the context does not cover the question.`,
}

// Select returns the template id for the detected intent, falling back to
// the general template for anything unmapped.
func Select(ic intent.Context) TemplateID {
	if id, ok := byIntent[ic.PrimaryIntent]; ok {
		return id
	}
	return TemplateGeneral
}

// Text returns the instruction text for a template id. For the composite id
// the caller should use CompositeText with the query's sub-intents.
func Text(id TemplateID) string {
	if text, ok := templates[id]; ok {
		return text
	}
	return templates[TemplateGeneral]
}

// CompositeText concatenates the templates of the given sub-intents. A
// multi-intent query gets the union of its parts, not a bespoke template.
func CompositeText(subs []intent.Intent) string {
	if len(subs) == 0 {
		return templates[TemplateGeneral]
	}
	parts := make([]string, 0, len(subs))
	for _, sub := range subs {
		if id, ok := byIntent[sub]; ok {
			parts = append(parts, templates[id])
		}
	}
	return strings.Join(parts, "\n\n")
}
