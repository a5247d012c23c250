package storage

import (
	"context"

	"github.com/xaenox/context-engine/internal/models"
)

// Store exposes the read APIs of the user's domain record collections. The
// engine treats each call as returning the full, current in-memory
// collection; loading, pagination and freshness belong to the provider.
type Store interface {
	Notes(ctx context.Context) ([]models.Note, error)
	Events(ctx context.Context) ([]models.Event, error)
	Places(ctx context.Context) ([]models.Place, error)
	Messages(ctx context.Context) ([]models.Message, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	Close() error
}
