package qabot

import (
	"strings"
	"time"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "USER"
	SenderBot  Sender = "BOT"
)

// NormalizeSender maps the engine's case-insensitive sender tag onto the
// stored enum. Anything that is not a user message counts as bot output.
func NormalizeSender(tag string) Sender {
	if strings.EqualFold(strings.TrimSpace(tag), "user") {
		return SenderUser
	}
	return SenderBot
}

// StoredMessage is one chat turn as persisted for restore purposes.
type StoredMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionData holds everything persisted for a single session.
type SessionData struct {
	Messages  []StoredMessage `json:"messages"`
	StartedAt time.Time       `json:"startedAt"`
	Preview   string          `json:"preview"`
}

// HasMessage reports whether a message with the given id is already stored.
func (s *SessionData) HasMessage(id string) bool {
	for _, m := range s.Messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// SessionStore is the persisted aggregate: session id -> session data.
type SessionStore map[string]*SessionData

// TotalMessages counts messages across all sessions in the store.
func (s SessionStore) TotalMessages() int {
	total := 0
	for _, data := range s {
		total += len(data.Messages)
	}
	return total
}

// SessionSummary is the read model the history menu displays.
type SessionSummary struct {
	SessionID    string    `json:"sessionId"`
	StartedAt    time.Time `json:"startedAt"`
	Preview      string    `json:"preview"`
	MessageCount int       `json:"messageCount"`
}
