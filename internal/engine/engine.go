// Package engine wires the pipeline together: extraction, intent
// classification, domain filtering, assembly and template selection.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/context-engine/internal/assembler"
	"github.com/xaenox/context-engine/internal/extractor"
	"github.com/xaenox/context-engine/internal/filter"
	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/merchant"
	"github.com/xaenox/context-engine/internal/models"
	"github.com/xaenox/context-engine/internal/prompts"
	"github.com/xaenox/context-engine/internal/storage"
	"github.com/xaenox/context-engine/pkg/config"
)

type Engine struct {
	store         storage.Store
	lookup        merchant.Lookup
	classifier    *intent.Classifier
	limits        filter.Limits
	lookupTimeout time.Duration
	historyWindow int
	clock         func() time.Time
	logger        *zap.Logger
}

// New builds an engine over the given record store and merchant lookup. The
// lookup may be nil, in which case transaction scoring is keyword-only.
func New(store storage.Store, lookup merchant.Lookup, cfg config.EngineConfig, logger *zap.Logger) *Engine {
	return &Engine{
		store:      store,
		lookup:     lookup,
		classifier: intent.NewClassifier(cfg.IntentThreshold, cfg.SubIntentThreshold),
		limits: filter.Limits{
			Notes:        cfg.NotesLimit,
			Events:       cfg.EventsLimit,
			Places:       cfg.PlacesLimit,
			Messages:     cfg.MessagesLimit,
			Transactions: cfg.TransactionsLimit,
			Sample:       cfg.SampleLimit,
		},
		lookupTimeout: cfg.LookupTimeout,
		historyWindow: cfg.HistoryWindow,
		clock:         time.Now,
		logger:        logger,
	}
}

// SetClock overrides the time source. Used for deterministic tests.
func (e *Engine) SetClock(clock func() time.Time) {
	e.clock = clock
}

// BuildContext interprets the query, pulls the relevant subset of the user's
// records, and returns the structured payload plus the instruction template
// matching the detected intent. Every failure mode degrades to a valid,
// possibly sparse payload; the caller never receives an error.
func (e *Engine) BuildContext(ctx context.Context, query string, history []models.ConversationTurn) (*assembler.StructuredPayload, prompts.TemplateID) {
	now := e.clock()

	var ex extractor.Extraction
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		ex = extractor.Extract(trimmed, now)
	}
	if ex.Entities == nil {
		ex.Entities = []string{}
	}

	ic := e.classifier.Classify(ex)
	e.logger.Debug("Classified query",
		zap.String("intent", string(ic.PrimaryIntent)),
		zap.Float64("confidence", ic.Confidence),
		zap.String("match_type", string(ic.MatchType)))

	fc := e.filterDomains(ctx, ic)
	payload := assembler.Assemble(fc, ic, history, now, e.historyWindow)
	return payload, prompts.Select(ic)
}

type domainSet struct {
	notes        bool
	events       bool
	places       bool
	messages     bool
	transactions bool
}

// domainsFor maps the detected intent to the record domains worth filtering.
// A multi-intent query takes the union over its sub-intents; a general query
// samples every domain.
func domainsFor(ic intent.Context) domainSet {
	var ds domainSet
	mark := func(in intent.Intent) {
		switch in {
		case intent.Scheduling, intent.Weather:
			ds.events = true
		case intent.Messaging:
			ds.messages = true
		case intent.Notes:
			ds.notes = true
		case intent.Places, intent.Navigation:
			ds.places = true
		case intent.Finance:
			ds.transactions = true
		case intent.General:
			ds = domainSet{notes: true, events: true, places: true, messages: true, transactions: true}
		}
	}
	mark(ic.PrimaryIntent)
	for _, sub := range ic.SubIntents {
		mark(sub)
	}
	return ds
}

// filterDomains fans out one filter per relevant domain. The filters are
// pure functions over disjoint inputs, so they run concurrently; each writes
// its own field of the filtered context, keeping the merged payload layout
// independent of completion order.
func (e *Engine) filterDomains(ctx context.Context, ic intent.Context) assembler.FilteredContext {
	ds := domainsFor(ic)
	var fc assembler.FilteredContext
	var wg sync.WaitGroup

	if ds.notes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			notes, err := e.store.Notes(ctx)
			if err != nil {
				e.logger.Error("Failed to load notes", zap.Error(err))
				return
			}
			fc.Notes = filter.FilterNotes(ic, notes, e.limits)
		}()
	}
	if ds.events {
		wg.Add(1)
		go func() {
			defer wg.Done()
			events, err := e.store.Events(ctx)
			if err != nil {
				e.logger.Error("Failed to load events", zap.Error(err))
				return
			}
			fc.Events = filter.FilterEvents(ic, events, e.limits)
		}()
	}
	if ds.places {
		wg.Add(1)
		go func() {
			defer wg.Done()
			places, err := e.store.Places(ctx)
			if err != nil {
				e.logger.Error("Failed to load places", zap.Error(err))
				return
			}
			fc.Places = filter.FilterPlaces(ic, places, e.limits)
		}()
	}
	if ds.messages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			messages, err := e.store.Messages(ctx)
			if err != nil {
				e.logger.Error("Failed to load messages", zap.Error(err))
				return
			}
			fc.Messages = filter.FilterMessages(ic, messages, e.limits)
		}()
	}
	if ds.transactions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			transactions, err := e.store.Transactions(ctx)
			if err != nil {
				e.logger.Error("Failed to load transactions", zap.Error(err))
				return
			}
			result := filter.FilterTransactions(ctx, ic, transactions, e.lookup, e.lookupTimeout, e.limits, e.logger)
			fc.Transactions = &result
		}()
	}

	wg.Wait()
	return fc
}
