package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database for testing, with
// the widget's key-value table already in place.
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS qa_bot_kv (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create qa_bot_kv table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedKV inserts a key-value pair into the widget's table.
func SeedKV(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	_, err := db.Exec(`
	INSERT INTO qa_bot_kv (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		t.Fatalf("Failed to seed key %s: %v", key, err)
	}
}

// CreateTestDB creates an in-memory database pre-seeded with a small
// session store: one two-message conversation.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	store := map[string]any{
		"qa_bot_session_fixture": map[string]any{
			"startedAt": "2025-03-01T09:00:00Z",
			"preview":   "what is the refund policy?",
			"messages": []map[string]any{
				{
					"id":        "m1",
					"content":   "what is the refund policy?",
					"sender":    "USER",
					"type":      "string",
					"timestamp": "2025-03-01T09:00:00Z",
				},
				{
					"id":        "m2",
					"content":   "Refunds are available within 30 days.",
					"sender":    "BOT",
					"type":      "string",
					"timestamp": "2025-03-01T09:00:05Z",
				},
			},
		},
	}
	SeedKV(t, db, "qa_bot_session_messages", string(JSONMarshal(t, store)))
	return db
}
