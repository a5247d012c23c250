package models

import "time"

// Message represents a received message (email, SMS, chat).
type Message struct {
	ID      string    `json:"id"`
	Sender  string    `json:"sender"`
	Subject string    `json:"subject,omitempty"`
	Content string    `json:"content"`
	Unread  bool      `json:"unread"`
	SentAt  time.Time `json:"sent_at"`
}
