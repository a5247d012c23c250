package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/xaenox/context-engine/internal/models"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresStore reads the user's domain records from PostgreSQL. The engine
// never writes; every query here is a plain SELECT.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(config DatabaseConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Notes(ctx context.Context) ([]models.Note, error) {
	query := `
		SELECT id, title, content, tags, created_at, updated_at
		FROM notes
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var note models.Note
		err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			pq.Array(&note.Tags),
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func (s *PostgresStore) Events(ctx context.Context) ([]models.Event, error) {
	query := `
		SELECT id, title, description, location, start_time, end_time, all_day
		FROM events
		ORDER BY start_time`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Location,
			&event.StartTime,
			&event.EndTime,
			&event.AllDay,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *PostgresStore) Places(ctx context.Context) ([]models.Place, error) {
	query := `
		SELECT id, name, category, city, country, rating, visits, last_visit
		FROM places
		ORDER BY last_visit DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		var place models.Place
		err := rows.Scan(
			&place.ID,
			&place.Name,
			&place.Category,
			&place.City,
			&place.Country,
			&place.Rating,
			&place.Visits,
			&place.LastVisit,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning place: %w", err)
		}
		places = append(places, place)
	}

	return places, rows.Err()
}

func (s *PostgresStore) Messages(ctx context.Context) ([]models.Message, error) {
	query := `
		SELECT id, sender, subject, content, unread, sent_at
		FROM messages
		ORDER BY sent_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID,
			&message.Sender,
			&message.Subject,
			&message.Content,
			&message.Unread,
			&message.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

func (s *PostgresStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, merchant, description, category, amount, currency, date
		FROM transactions
		ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var txn models.Transaction
		err := rows.Scan(
			&txn.ID,
			&txn.Merchant,
			&txn.Description,
			&txn.Category,
			&txn.Amount,
			&txn.Currency,
			&txn.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
