package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// LocationFilter narrows place-like lookups. Every field is optional and
// independently set; a nil filter means the query carries no location signal.
type LocationFilter struct {
	City      string  `json:"city,omitempty"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Category  string  `json:"category,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

var knownCities = []string{
	"new york", "san francisco", "los angeles", "london", "paris", "berlin",
	"amsterdam", "barcelona", "madrid", "rome", "lisbon", "moscow", "dubai",
	"tokyo", "singapore", "sydney", "toronto", "istanbul", "prague", "vienna",
}

var knownRegions = []string{
	"california", "texas", "florida", "bavaria", "catalonia", "tuscany",
	"scotland", "quebec", "andalusia",
}

var knownCountries = []string{
	"usa", "united states", "united kingdom", "france", "germany", "spain",
	"italy", "portugal", "netherlands", "japan", "australia", "canada",
	"turkey", "russia",
}

// categoryVocabulary maps query tokens to a canonical place/spending
// category.
var categoryVocabulary = map[string]string{
	"coffee": "coffee", "cafe": "coffee", "cafes": "coffee",
	"restaurant": "restaurant", "restaurants": "restaurant",
	"gym": "gym", "gyms": "gym", "fitness": "gym",
	"bank": "bank", "banks": "bank", "atm": "bank",
	"grocery": "grocery", "groceries": "grocery", "supermarket": "grocery",
	"pharmacy": "pharmacy", "drugstore": "pharmacy",
	"hotel": "hotel", "hotels": "hotel",
	"bar": "bar", "bars": "bar", "pub": "bar",
}

var (
	ratedRe = regexp.MustCompile(`rated\s+(\d(?:\.\d)?)`)
	starsRe = regexp.MustCompile(`(\d(?:\.\d)?)\s+stars?`)
)

// ParseLocation matches the query against the fixed city, region, country and
// category vocabularies. All matching signals are retained.
func ParseLocation(lowerQuery string) *LocationFilter {
	var filter LocationFilter
	found := false

	for _, city := range knownCities {
		if strings.Contains(lowerQuery, city) {
			filter.City = city
			found = true
			break
		}
	}
	for _, region := range knownRegions {
		if strings.Contains(lowerQuery, region) {
			filter.Region = region
			found = true
			break
		}
	}
	for _, country := range knownCountries {
		if strings.Contains(lowerQuery, country) {
			filter.Country = country
			found = true
			break
		}
	}

	for _, token := range strings.Fields(lowerQuery) {
		token = strings.Trim(token, ".,!?;:")
		if category, ok := categoryVocabulary[token]; ok {
			filter.Category = category
			found = true
			break
		}
	}

	if m := ratedRe.FindStringSubmatch(lowerQuery); m != nil {
		if rating, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.MinRating = rating
			found = true
		}
	} else if m := starsRe.FindStringSubmatch(lowerQuery); m != nil {
		if rating, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.MinRating = rating
			found = true
		}
	}

	if !found {
		return nil
	}
	return &filter
}
