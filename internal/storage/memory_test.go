package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/context-engine/internal/models"
)

func TestMemoryStoreAssignsIDs(t *testing.T) {
	store := NewMemoryStore()

	note := store.AddNote(models.Note{Title: "Garden"})
	assert.NotEmpty(t, note.ID)

	kept := store.AddNote(models.Note{ID: "n1", Title: "Books"})
	assert.Equal(t, "n1", kept.ID, "explicit ids are preserved")
}

func TestMemoryStoreReadsReturnCopies(t *testing.T) {
	store := NewMemoryStore()
	store.AddEvent(models.Event{ID: "e1", Title: "Standup", StartTime: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)})

	first, err := store.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	first[0].Title = "mutated"

	second, err := store.Events(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Standup", second[0].Title)
}

func TestMemoryStorePreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	store.AddTransaction(models.Transaction{ID: "t1"})
	store.AddTransaction(models.Transaction{ID: "t2"})
	store.AddTransaction(models.Transaction{ID: "t3"})

	txns, err := store.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "t1", txns[0].ID)
	assert.Equal(t, "t3", txns[2].ID)
}

func TestMemoryStoreClose(t *testing.T) {
	assert.NoError(t, NewMemoryStore().Close())
}
