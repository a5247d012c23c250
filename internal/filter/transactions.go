package filter

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xaenox/context-engine/internal/intent"
	"github.com/xaenox/context-engine/internal/merchant"
	"github.com/xaenox/context-engine/internal/models"
)

// LookupMode states whether merchant-semantic boosts were applied to a
// transaction result list.
type LookupMode string

const (
	// LookupSemantic means the merchant lookup answered and semantic boosts
	// were applied where they matched.
	LookupSemantic LookupMode = "semantic"
	// LookupKeywordOnly means scoring used keywords alone: the lookup was
	// absent, failed, timed out, or resolved no merchant.
	LookupKeywordOnly LookupMode = "keyword_only"
)

// TransactionResult bundles the ranked transactions with their aggregate
// statistics and the lookup mode that produced them.
type TransactionResult struct {
	Records []Record[models.Transaction]
	Stats   *Stats
	Mode    LookupMode
}

// FilterTransactions ranks financial transactions. Date range and a
// conflicting spending category exclude records outright. The merchant
// lookup is consulted with a bounded timeout; on any failure scoring
// degrades to keyword-only and the result is flagged, never failed.
func FilterTransactions(ctx context.Context, ic intent.Context, txns []models.Transaction, lookup merchant.Lookup, timeout time.Duration, limits Limits, logger *zap.Logger) TransactionResult {
	if ic.PrimaryIntent == intent.General {
		records := sampleTransactions(txns, limits.Sample)
		return TransactionResult{Records: records, Stats: ComputeStats(records), Mode: LookupKeywordOnly}
	}

	// hard constraints first
	var survivors []models.Transaction
	for _, txn := range txns {
		if ic.DateRange != nil && !ic.DateRange.Contains(txn.Date) {
			continue
		}
		if ic.Location != nil && ic.Location.Category != "" && !categoryMatches(txn.Category, ic.Location.Category) {
			continue
		}
		survivors = append(survivors, txn)
	}

	metadata, mode := resolveMerchants(ctx, survivors, lookup, timeout, logger)

	entitySet := entitySetOf(ic.Entities)
	var results []Record[models.Transaction]

	for _, txn := range survivors {
		score := 0.0
		matchType := MatchType("")
		merchantLower := strings.ToLower(txn.Merchant)

		if _, ok := entitySet[merchantLower]; ok {
			score += weightTitleExact
			matchType = MatchTitleExact
		} else if hits := countContained(txn.Merchant, ic.Entities); hits > 0 {
			score += float64(hits) * weightTitleKeyword
			matchType = MatchKeyword
		}

		if hits := countContained(txn.Description, ic.Entities); hits > 0 {
			score += float64(hits) * weightKeyword
			if matchType == "" {
				matchType = MatchKeyword
			}
		}

		if ic.Location != nil && ic.Location.Category != "" {
			// survivors already satisfy the category constraint
			score += weightCategory
			if matchType == "" {
				matchType = MatchCategory
			}
		} else if hits := countContained(txn.Category, ic.Entities); hits > 0 {
			score += float64(hits) * weightCategory
			if matchType == "" {
				matchType = MatchCategory
			}
		}

		record := Record[models.Transaction]{Item: txn}

		if meta := metadata[merchantLower]; meta != nil {
			if semanticHit(meta, entitySet) {
				score += weightSemantic
				matchType = MatchMerchantSemantic
				record.MerchantType = meta.MerchantType
				record.Products = meta.Products
			}
		}

		if ic.Amount != nil && ic.Amount.Matches(txn.Amount) {
			score += weightAmountRange
			if matchType == "" {
				matchType = MatchAmountRange
			}
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

		record.Score = score
		record.MatchType = matchType
		results = append(results, record)
	}

	stats := ComputeStats(results)
	records := finalize(results, func(a, b Record[models.Transaction]) bool {
		return a.Item.Date.After(b.Item.Date)
	}, limits.Transactions)

	return TransactionResult{Records: records, Stats: stats, Mode: mode}
}

// resolveMerchants classifies each distinct merchant within one shared
// timeout budget. Any lookup failure discards the collected metadata so a
// flaky lookup cannot make output order-dependent. The semantic mode is
// reported only when at least one merchant resolved; a pass where every
// merchant is unknown scored exactly like keyword-only, so it is flagged
// as such.
func resolveMerchants(ctx context.Context, txns []models.Transaction, lookup merchant.Lookup, timeout time.Duration, logger *zap.Logger) (map[string]*merchant.Metadata, LookupMode) {
	if lookup == nil || len(txns) == 0 {
		return nil, LookupKeywordOnly
	}

	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	names := make([]string, 0, len(txns))
	seen := make(map[string]struct{}, len(txns))
	for _, txn := range txns {
		lower := strings.ToLower(txn.Merchant)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		names = append(names, txn.Merchant)
	}

	metadata := make(map[string]*merchant.Metadata, len(names))
	for _, name := range names {
		meta, err := lookup.Classify(lookupCtx, name)
		if err != nil {
			logger.Warn("Merchant lookup degraded to keyword-only scoring",
				zap.Error(err),
				zap.String("merchant", name))
			return nil, LookupKeywordOnly
		}
		if meta != nil {
			metadata[strings.ToLower(name)] = meta
		}
	}
	if len(metadata) == 0 {
		return nil, LookupKeywordOnly
	}
	return metadata, LookupSemantic
}

// semanticHit reports whether any query entity conceptually matches the
// merchant type or its products, e.g. entity "pizza" against type "Pizzeria".
func semanticHit(meta *merchant.Metadata, entitySet map[string]struct{}) bool {
	typeLower := strings.ToLower(meta.MerchantType)
	for entity := range entitySet {
		if strings.Contains(typeLower, entity) {
			return true
		}
	}
	for _, product := range meta.Products {
		if _, ok := entitySet[strings.ToLower(product)]; ok {
			return true
		}
	}
	return false
}

func sampleTransactions(txns []models.Transaction, limit int) []Record[models.Transaction] {
	sorted := make([]models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	results := make([]Record[models.Transaction], 0, len(sorted))
	for _, txn := range sorted {
		results = append(results, Record[models.Transaction]{Item: txn, MatchType: MatchSample})
	}
	return results
}
