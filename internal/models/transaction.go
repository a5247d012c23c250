package models

import "time"

// Transaction represents a single financial transaction. Amount is positive
// for spending.
type Transaction struct {
	ID          string    `json:"id"`
	Merchant    string    `json:"merchant"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
}
