package models

import "time"

// ConversationTurn is a single turn in the dialogue between the user and the
// assistant, supplied by the caller in chronological order. The current user
// query is expected to be the last turn.
type ConversationTurn struct {
	IsUser    bool      `json:"is_user"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
