package extractor

import (
	"regexp"
	"strconv"
)

// AmountRange narrows transactions by amount. Max == 0 means unbounded above;
// Min == 0 means unbounded below.
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

var (
	betweenRe = regexp.MustCompile(`between\s+\$?(\d+(?:\.\d+)?)\s+and\s+\$?(\d+(?:\.\d+)?)`)
	overRe    = regexp.MustCompile(`(?:over|above|more than|at least)\s+\$?(\d+(?:\.\d+)?)`)
	underRe   = regexp.MustCompile(`(?:under|below|less than|at most)\s+\$?(\d+(?:\.\d+)?)`)
)

// ParseAmountRange extracts an amount constraint from phrases like
// "over $50", "under $100" or "between $20 and $50".
func ParseAmountRange(lowerQuery string) *AmountRange {
	if m := betweenRe.FindStringSubmatch(lowerQuery); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && hi >= lo {
			return &AmountRange{Min: lo, Max: hi}
		}
	}
	if m := overRe.FindStringSubmatch(lowerQuery); m != nil {
		if lo, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &AmountRange{Min: lo}
		}
	}
	if m := underRe.FindStringSubmatch(lowerQuery); m != nil {
		if hi, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &AmountRange{Max: hi}
		}
	}
	return nil
}

// Matches reports whether an amount satisfies the range.
func (r *AmountRange) Matches(amount float64) bool {
	if amount < r.Min {
		return false
	}
	if r.Max > 0 && amount > r.Max {
		return false
	}
	return true
}
