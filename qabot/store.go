package qabot

import (
	"encoding/json"
	"sort"
)

// sessionStoreKey is the single KV record holding the whole aggregate,
// mirroring the localStorage layout of the browser build.
const sessionStoreKey = "qa_bot_session_messages"

// DefaultMaxTotalMessages bounds the message count across all sessions
// before whole-session eviction kicks in.
const DefaultMaxTotalMessages = 100

// SessionStorage persists the SessionStore aggregate through a KV and
// applies the eviction policy on every save.
type SessionStorage struct {
	kv               KV
	maxTotalMessages int
}

func NewSessionStorage(kv KV, maxTotalMessages int) *SessionStorage {
	if maxTotalMessages <= 0 {
		maxTotalMessages = DefaultMaxTotalMessages
	}
	return &SessionStorage{kv: kv, maxTotalMessages: maxTotalMessages}
}

// Load reads the aggregate. Corrupt or unreadable data yields an empty
// store; a broken record must never take the widget down.
func (s *SessionStorage) Load() SessionStore {
	raw, ok, err := s.kv.Get(sessionStoreKey)
	if err != nil {
		LogWarn("Failed to read session store: %v", err)
		return SessionStore{}
	}
	if !ok || raw == "" {
		return SessionStore{}
	}

	var store SessionStore
	if err := json.Unmarshal([]byte(raw), &store); err != nil {
		LogWarn("Corrupt session store, starting empty: %v", err)
		return SessionStore{}
	}
	if store == nil {
		return SessionStore{}
	}
	// A record can parse and still carry null session entries; those would
	// blow up every read path downstream.
	for id, data := range store {
		if data == nil {
			LogWarn("Dropping null session entry %s", id)
			delete(store, id)
		}
	}
	return store
}

// Save evicts sessions over budget and writes the aggregate back.
func (s *SessionStorage) Save(store SessionStore) error {
	s.evict(store)

	data, err := json.Marshal(store)
	if err != nil {
		return &StorageError{Key: sessionStoreKey, Op: "encode", Err: err}
	}
	return s.kv.Set(sessionStoreKey, string(data))
}

// evict removes whole sessions, oldest StartedAt first, until the total
// message count is back under budget. The last remaining session survives
// even if it alone exceeds the budget; partial-session trimming would break
// transcript restore.
func (s *SessionStorage) evict(store SessionStore) {
	for store.TotalMessages() > s.maxTotalMessages && len(store) > 1 {
		oldest := ""
		for id, data := range store {
			if oldest == "" || data.StartedAt.Before(store[oldest].StartedAt) {
				oldest = id
			}
		}
		LogDebug("Evicting session %s (%d messages)", oldest, len(store[oldest].Messages))
		delete(store, oldest)
	}
}

// Summaries lists all sessions most recent first.
func (s *SessionStorage) Summaries() []SessionSummary {
	store := s.Load()
	summaries := make([]SessionSummary, 0, len(store))
	for id, data := range store {
		summaries = append(summaries, SessionSummary{
			SessionID:    id,
			StartedAt:    data.StartedAt,
			Preview:      data.Preview,
			MessageCount: len(data.Messages),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})
	return summaries
}
