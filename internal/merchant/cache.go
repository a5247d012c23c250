package merchant

import (
	"context"
	"strings"
	"sync"
)

// CachedLookup memoizes successful results of an underlying lookup. Errors
// are never cached, so a cache hit and a cache miss produce the same output
// for the same merchant.
type CachedLookup struct {
	inner Lookup

	mu      sync.Mutex
	entries map[string]*Metadata
}

func NewCachedLookup(inner Lookup) *CachedLookup {
	return &CachedLookup{
		inner:   inner,
		entries: make(map[string]*Metadata),
	}
}

func (c *CachedLookup) Classify(ctx context.Context, merchantName string) (*Metadata, error) {
	key := strings.ToLower(strings.TrimSpace(merchantName))

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	metadata, err := c.inner.Classify(ctx, merchantName)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = metadata
	c.mu.Unlock()
	return metadata, nil
}
