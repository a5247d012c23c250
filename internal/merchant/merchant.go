package merchant

import "context"

// Metadata describes what a merchant is and what it sells.
type Metadata struct {
	MerchantType string   `json:"merchant_type"`
	Products     []string `json:"products"`
}

// Lookup resolves a free-text merchant name to its metadata. Implementations
// may be slow or unavailable; callers are expected to apply a timeout and
// treat failures as best-effort. A (nil, nil) return means the merchant is
// unknown.
type Lookup interface {
	Classify(ctx context.Context, merchantName string) (*Metadata, error)
}
