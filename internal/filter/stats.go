package filter

import (
	"math"
	"sort"

	"github.com/xaenox/context-engine/internal/models"
)

// CategorySlice is one row of the per-category spending breakdown.
type CategorySlice struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
}

// Stats aggregates the filtered transactions (never the full record set).
type Stats struct {
	Count      int             `json:"count"`
	Total      float64         `json:"total"`
	Average    float64         `json:"average"`
	Max        float64         `json:"max"`
	Min        float64         `json:"min"`
	ByCategory []CategorySlice `json:"by_category"`
}

// ComputeStats summarizes the transactions that survived filtering. Money
// values are rounded to two decimals; the breakdown is sorted by total
// descending so serialization stays deterministic.
func ComputeStats(records []Record[models.Transaction]) *Stats {
	if len(records) == 0 {
		return &Stats{}
	}

	stats := &Stats{
		Count: len(records),
		Min:   math.MaxFloat64,
	}
	byCategory := make(map[string]*CategorySlice)

	for _, record := range records {
		amount := record.Item.Amount
		stats.Total += amount
		if amount > stats.Max {
			stats.Max = amount
		}
		if amount < stats.Min {
			stats.Min = amount
		}

		slice, ok := byCategory[record.Item.Category]
		if !ok {
			slice = &CategorySlice{Category: record.Item.Category}
			byCategory[record.Item.Category] = slice
		}
		slice.Count++
		slice.Total += amount
	}

	stats.Average = round2(stats.Total / float64(stats.Count))
	stats.Total = round2(stats.Total)
	stats.Max = round2(stats.Max)
	stats.Min = round2(stats.Min)

	stats.ByCategory = make([]CategorySlice, 0, len(byCategory))
	for _, slice := range byCategory {
		if stats.Total > 0 {
			slice.Percent = round2(slice.Total / stats.Total * 100)
		}
		slice.Total = round2(slice.Total)
		stats.ByCategory = append(stats.ByCategory, *slice)
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		if stats.ByCategory[i].Total != stats.ByCategory[j].Total {
			return stats.ByCategory[i].Total > stats.ByCategory[j].Total
		}
		return stats.ByCategory[i].Category < stats.ByCategory[j].Category
	})

	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
