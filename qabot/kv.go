package qabot

import "sync"

// KV is the durable key-value surface the session store persists through.
// The browser build of this widget sat on localStorage; embedders here
// supply a SQLite-backed KV (see OpenDatabase/NewSQLiteKV) or fall back to
// the in-memory implementation.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryKV is a process-lifetime KV. Used by tests and by embedders that do
// not care about history surviving a restart.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
