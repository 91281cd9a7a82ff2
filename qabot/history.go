package qabot

import (
	"strings"
	"time"
)

// Catalog exposes the history read model and performs session switching.
type Catalog struct {
	sessions *SessionManager
	storage  *SessionStorage
	engine   ChatEngine
}

func NewCatalog(sessions *SessionManager, storage *SessionStorage, engine ChatEngine) *Catalog {
	return &Catalog{
		sessions: sessions,
		storage:  storage,
		engine:   engine,
	}
}

// ListSessions returns all known sessions, most recent first.
func (c *Catalog) ListSessions() []SessionSummary {
	return c.storage.Summaries()
}

// SelectSession reconstructs the chosen session's transcript in the engine
// and makes it the current session. Selecting the current session is a
// no-op. A session with zero eligible messages still switches the pointer;
// an empty restore is valid.
func (c *Catalog) SelectSession(sessionID string) error {
	if sessionID == c.sessions.Current() {
		return nil
	}

	store := c.storage.Load()
	var messages []StoredMessage
	if session, ok := store[sessionID]; ok {
		messages = session.Messages
	}

	display := make([]DisplayMessage, 0, len(messages))
	for _, m := range messages {
		// Defensive: legacy records can carry empty content.
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		display = append(display, translateForDisplay(m))
	}

	// The tracker must not re-persist the replayed messages the engine is
	// about to emit.
	c.sessions.BeginRestore()
	err := c.engine.ReplaceTranscript(display)
	c.sessions.EndRestore()
	if err != nil {
		return err
	}

	c.sessions.SetCurrent(sessionID)
	LogInfo("Restored session %s (%d messages)", sessionID, len(display))
	return nil
}

// translateForDisplay converts a stored message into the engine's display
// shape. The engine's markdown pass is bypassed on transcript replacement,
// so markdown links are expanded to anchors here.
func translateForDisplay(m StoredMessage) DisplayMessage {
	msgType := m.Type
	if msgType == "" {
		msgType = "string"
	}
	return DisplayMessage{
		ID:        m.ID,
		Content:   FixMarkdownLinks(m.Content),
		Sender:    strings.ToUpper(string(m.Sender)),
		Type:      msgType,
		Timestamp: m.Timestamp.Format(time.RFC3339),
	}
}
