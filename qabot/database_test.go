package qabot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/snf/qa-bot-core/testutil"
)

func openTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "qabot.db"))
	if err != nil {
		t.Fatalf("OpenDatabase() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteKV(db)
}

func TestSQLiteKV_GetMissing(t *testing.T) {
	kv := openTestKV(t)

	value, ok, err := kv.Get("absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true for a missing key")
	}
	if value != "" {
		t.Errorf("Get() value = %q, want empty", value)
	}
}

func TestSQLiteKV_SetGetRoundTrip(t *testing.T) {
	kv := openTestKV(t)

	if err := kv.Set("k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || value != "v1" {
		t.Errorf("Get() = (%q, %v), want (v1, true)", value, ok)
	}

	// Upsert overwrites.
	if err := kv.Set("k", "v2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	value, _, _ = kv.Get("k")
	if value != "v2" {
		t.Errorf("Get() after overwrite = %q, want v2", value)
	}
}

func TestSQLiteKV_BacksSessionStorage(t *testing.T) {
	kv := openTestKV(t)
	storage := NewSessionStorage(kv, 0)

	store := SessionStore{
		"s1": CreateTestSessionData(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			CreateTestMessage("m1", SenderUser, "persisted through sqlite"),
		),
	}
	if err := storage.Save(store); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := storage.Load()
	if got := loaded["s1"]; got == nil || len(got.Messages) != 1 {
		t.Fatalf("Load() = %+v, want the saved session back", loaded)
	}
	if loaded["s1"].Messages[0].Content != "persisted through sqlite" {
		t.Errorf("content = %q", loaded["s1"].Messages[0].Content)
	}
}

func TestSQLiteKV_InMemory(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	kv := NewSQLiteKV(db)

	if err := kv.Set("k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok, err := kv.Get("k")
	if err != nil || !ok || value != "v" {
		t.Errorf("Get() = (%q, %v, %v), want (v, true, nil)", value, ok, err)
	}
}

func TestSessionStorage_LoadsSeededFixture(t *testing.T) {
	db := testutil.CreateTestDB(t)
	storage := NewSessionStorage(NewSQLiteKV(db), 0)

	store := storage.Load()
	session, ok := store["qa_bot_session_fixture"]
	if !ok {
		t.Fatal("seeded session missing")
	}
	if len(session.Messages) != 2 {
		t.Fatalf("seeded session has %d messages, want 2", len(session.Messages))
	}
	if session.Messages[1].Sender != SenderBot {
		t.Errorf("second message sender = %q, want BOT", session.Messages[1].Sender)
	}
	if session.Preview != "what is the refund policy?" {
		t.Errorf("preview = %q", session.Preview)
	}
}
