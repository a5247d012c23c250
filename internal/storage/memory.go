package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/xaenox/context-engine/internal/models"
)

// MemoryStore keeps all domain records in memory. It backs deterministic
// tests and callers that load records themselves.
type MemoryStore struct {
	mu           sync.RWMutex
	notes        []models.Note
	events       []models.Event
	places       []models.Place
	messages     []models.Message
	transactions []models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AddNote(note models.Note) models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	s.notes = append(s.notes, note)
	return note
}

func (s *MemoryStore) AddEvent(event models.Event) models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	s.events = append(s.events, event)
	return event
}

func (s *MemoryStore) AddPlace(place models.Place) models.Place {
	s.mu.Lock()
	defer s.mu.Unlock()

	if place.ID == "" {
		place.ID = uuid.New().String()
	}
	s.places = append(s.places, place)
	return place
}

func (s *MemoryStore) AddMessage(message models.Message) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	s.messages = append(s.messages, message)
	return message
}

func (s *MemoryStore) AddTransaction(txn models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	s.transactions = append(s.transactions, txn)
	return txn
}

func (s *MemoryStore) Notes(ctx context.Context) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]models.Note, len(s.notes))
	copy(notes, s.notes)
	return notes, nil
}

func (s *MemoryStore) Events(ctx context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, len(s.events))
	copy(events, s.events)
	return events, nil
}

func (s *MemoryStore) Places(ctx context.Context) ([]models.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	places := make([]models.Place, len(s.places))
	copy(places, s.places)
	return places, nil
}

func (s *MemoryStore) Messages(ctx context.Context) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]models.Message, len(s.messages))
	copy(messages, s.messages)
	return messages, nil
}

func (s *MemoryStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]models.Transaction, len(s.transactions))
	copy(transactions, s.transactions)
	return transactions, nil
}

func (s *MemoryStore) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
