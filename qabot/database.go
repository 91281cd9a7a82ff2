package qabot

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const kvTable = "qa_bot_kv"

// OpenDatabase opens (creating if necessary) the SQLite database backing the
// widget's persistent store.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	createTableSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value TEXT
	)`, kvTable)
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create %s table: %w", kvTable, err)
	}

	return db, nil
}

// SQLiteKV is a KV over the qa_bot_kv table.
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV wraps an opened database. The caller keeps ownership of db.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value sql.NullString
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?", kvTable)
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Key: key, Op: "read", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func (s *SQLiteKV) Set(key, value string) error {
	query := fmt.Sprintf(`
	INSERT INTO %s (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`, kvTable)
	if _, err := s.db.Exec(query, key, value); err != nil {
		return &StorageError{Key: key, Op: "write", Err: err}
	}
	return nil
}
