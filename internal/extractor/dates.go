package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is a resolved half-open interval [Start, End) with the phrase
// that produced it.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the range.
func (r *DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

var (
	pastDaysRe = regexp.MustCompile(`(?:past|last)\s+(\d+)\s+days`)
	isoDateRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// ParseDateRange resolves a temporal phrase in the query against the current
// instant. Unrecognized phrasing yields nil, never a guessed range.
func ParseDateRange(lowerQuery string, now time.Time) *DateRange {
	day := startOfDay(now)

	if m := pastDaysRe.FindStringSubmatch(lowerQuery); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return &DateRange{
				Start: day.AddDate(0, 0, -n),
				End:   day.AddDate(0, 0, 1),
				Label: fmt.Sprintf("past %d days", n),
			}
		}
	}

	switch {
	case containsPhrase(lowerQuery, "this week"):
		monday := startOfWeek(now)
		return &DateRange{Start: monday, End: monday.AddDate(0, 0, 7), Label: "this week"}
	case containsPhrase(lowerQuery, "last week"):
		monday := startOfWeek(now)
		return &DateRange{Start: monday.AddDate(0, 0, -7), End: monday, Label: "last week"}
	case containsPhrase(lowerQuery, "next week"):
		monday := startOfWeek(now)
		return &DateRange{Start: monday.AddDate(0, 0, 7), End: monday.AddDate(0, 0, 14), Label: "next week"}
	case containsPhrase(lowerQuery, "this month"):
		first := startOfMonth(now)
		return &DateRange{Start: first, End: first.AddDate(0, 1, 0), Label: "this month"}
	case containsPhrase(lowerQuery, "last month"):
		first := startOfMonth(now)
		return &DateRange{Start: first.AddDate(0, -1, 0), End: first, Label: "last month"}
	case containsPhrase(lowerQuery, "this year"):
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return &DateRange{Start: first, End: first.AddDate(1, 0, 0), Label: "this year"}
	case containsPhrase(lowerQuery, "yesterday"):
		return &DateRange{Start: day.AddDate(0, 0, -1), End: day, Label: "yesterday"}
	case containsPhrase(lowerQuery, "tomorrow"):
		return &DateRange{Start: day.AddDate(0, 0, 1), End: day.AddDate(0, 0, 2), Label: "tomorrow"}
	case containsPhrase(lowerQuery, "today"):
		return &DateRange{Start: day, End: day.AddDate(0, 0, 1), Label: "today"}
	}

	if dates := isoDateRe.FindAllString(lowerQuery, 2); len(dates) > 0 {
		first, err := time.ParseInLocation("2006-01-02", dates[0], now.Location())
		if err != nil {
			return nil
		}
		if len(dates) == 2 {
			second, err := time.ParseInLocation("2006-01-02", dates[1], now.Location())
			if err == nil && !second.Before(first) {
				return &DateRange{
					Start: first,
					End:   second.AddDate(0, 0, 1),
					Label: dates[0] + " to " + dates[1],
				}
			}
		}
		return &DateRange{Start: first, End: first.AddDate(0, 0, 1), Label: dates[0]}
	}

	return nil
}

// containsPhrase reports whether the phrase occurs in the query on word
// boundaries, so "this week" does not fire on "this weekend".
func containsPhrase(query, phrase string) bool {
	start := 0
	for {
		idx := strings.Index(query[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		beforeOK := idx == 0 || !isWordByte(query[idx-1])
		afterOK := end == len(query) || !isWordByte(query[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
	}
}

// isWordByte assumes a lowercased query.
func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(t).AddDate(0, 0, 1-weekday)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
