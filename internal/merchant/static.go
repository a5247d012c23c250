package merchant

import (
	"context"
	"strings"
)

type staticEntry struct {
	match    string
	metadata Metadata
}

// staticTable covers common merchant name fragments. Ordered so lookups stay
// deterministic.
var staticTable = []staticEntry{
	{"starbucks", Metadata{MerchantType: "Coffee Shop", Products: []string{"coffee", "latte", "espresso", "pastry"}}},
	{"costa", Metadata{MerchantType: "Coffee Shop", Products: []string{"coffee", "cappuccino", "tea"}}},
	{"dunkin", Metadata{MerchantType: "Coffee Shop", Products: []string{"coffee", "donuts"}}},
	{"pizza", Metadata{MerchantType: "Pizzeria", Products: []string{"pizza", "pasta"}}},
	{"domino", Metadata{MerchantType: "Pizzeria", Products: []string{"pizza"}}},
	{"mcdonald", Metadata{MerchantType: "Fast Food", Products: []string{"burger", "fries"}}},
	{"burger", Metadata{MerchantType: "Fast Food", Products: []string{"burger", "fries"}}},
	{"subway", Metadata{MerchantType: "Fast Food", Products: []string{"sandwich", "salad"}}},
	{"shell", Metadata{MerchantType: "Gas Station", Products: []string{"fuel", "gas"}}},
	{"exxon", Metadata{MerchantType: "Gas Station", Products: []string{"fuel", "gas"}}},
	{"uber", Metadata{MerchantType: "Ride Sharing", Products: []string{"ride", "taxi"}}},
	{"lyft", Metadata{MerchantType: "Ride Sharing", Products: []string{"ride", "taxi"}}},
	{"amazon", Metadata{MerchantType: "Online Retail", Products: []string{"shopping", "electronics", "books"}}},
	{"netflix", Metadata{MerchantType: "Streaming Service", Products: []string{"movies", "shows", "subscription"}}},
	{"spotify", Metadata{MerchantType: "Streaming Service", Products: []string{"music", "subscription"}}},
	{"whole foods", Metadata{MerchantType: "Grocery Store", Products: []string{"groceries", "food"}}},
	{"trader joe", Metadata{MerchantType: "Grocery Store", Products: []string{"groceries", "food"}}},
	{"walgreens", Metadata{MerchantType: "Pharmacy", Products: []string{"medicine", "prescription"}}},
	{"cvs", Metadata{MerchantType: "Pharmacy", Products: []string{"medicine", "prescription"}}},
	{"marriott", Metadata{MerchantType: "Hotel", Products: []string{"lodging", "rooms"}}},
	{"hilton", Metadata{MerchantType: "Hotel", Products: []string{"lodging", "rooms"}}},
}

// StaticLookup resolves merchants against a fixed substring table. It backs
// offline deployments and deterministic tests.
type StaticLookup struct{}

func NewStaticLookup() *StaticLookup {
	return &StaticLookup{}
}

func (l *StaticLookup) Classify(_ context.Context, merchantName string) (*Metadata, error) {
	lower := strings.ToLower(merchantName)
	for _, entry := range staticTable {
		if strings.Contains(lower, entry.match) {
			metadata := entry.metadata
			return &metadata, nil
		}
	}
	return nil, nil
}
