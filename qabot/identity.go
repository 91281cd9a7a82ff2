package qabot

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionIDPrefix = "qa_bot_session_"

// DefaultSettleDelay is how long the resetting/restoring flags stay up after
// the engine-level transition call returns.
const DefaultSettleDelay = 100 * time.Millisecond

// GenerateSessionID produces a new globally-unique session id.
func GenerateSessionID() string {
	return sessionIDPrefix + uuid.NewString()
}

// SessionManager is the single source of truth for which session is active.
// It is constructed once per widget and injected into the tracker, history
// catalog and flow controller.
type SessionManager struct {
	mu          sync.Mutex
	current     string
	resetting   transientFlag
	restoring   transientFlag
	settleDelay time.Duration
}

// NewSessionManager creates a manager with a freshly generated session id.
func NewSessionManager(settleDelay time.Duration) *SessionManager {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	return &SessionManager{
		current:     GenerateSessionID(),
		settleDelay: settleDelay,
	}
}

// Current returns the active session id.
func (m *SessionManager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// SetCurrent switches the active session id. Used by the history catalog
// after a restore.
func (m *SessionManager) SetCurrent(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = id
}

// Reset generates a new session id, makes it current and raises the
// resetting flag. The new session appears in the store lazily, once the
// first message is tracked under it. Calling Reset again before the flag
// clears just replaces the pending id and keeps the flag up.
func (m *SessionManager) Reset() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = GenerateSessionID()
	m.resetting.Raise()
	return m.current
}

// Resetting reports whether a new-chat transition is in progress.
func (m *SessionManager) Resetting() bool {
	return m.resetting.IsSet()
}

// ClearResettingFlag schedules the resetting flag to drop after the settle
// delay. Callers invoke this once the engine's restart call has returned;
// the delay covers messages the engine emits slightly afterwards.
func (m *SessionManager) ClearResettingFlag() {
	m.resetting.LowerAfter(m.settleDelay)
}

// BeginRestore raises the restoring flag so replayed messages are not
// re-persisted while a transcript is re-rendered.
func (m *SessionManager) BeginRestore() {
	m.restoring.Raise()
}

// EndRestore schedules the restoring flag to drop after the settle delay.
func (m *SessionManager) EndRestore() {
	m.restoring.LowerAfter(m.settleDelay)
}

// Restoring reports whether a history restore is in progress.
func (m *SessionManager) Restoring() bool {
	return m.restoring.IsSet()
}
