package qabot

import (
	"strings"
	"time"
)

// ratingOptionsMarker identifies the engine's built-in rating-option widget.
// Messages carrying it are UI affordances, not conversation content.
const ratingOptionsMarker = "rcb-options"

// Preview selection constants. A bot answer shorter than PreviewBotMinChars
// is usually a greeting ("Hello!") and makes a poor history label, so the
// first user message is preferred until a long enough answer shows up.
const (
	PreviewBotMinChars = 100
	PreviewMaxChars    = 50
)

// Tracker is the only writer to the session store. It observes every
// message the engine is about to show and persists the content-bearing ones
// under the current session id.
type Tracker struct {
	sessions *SessionManager
	storage  *SessionStorage
	now      func() time.Time
}

func NewTracker(sessions *SessionManager, storage *SessionStorage) *Tracker {
	return &Tracker{
		sessions: sessions,
		storage:  storage,
		now:      time.Now,
	}
}

// HandleMessage is the engine subscription callback. It must never panic
// into the engine's dispatch path; storage failures only degrade history
// fidelity, not live chat.
func (t *Tracker) HandleMessage(msg EngineMessage) {
	defer func() {
		if r := recover(); r != nil {
			LogError("Tracker panic recovered: %v", r)
		}
	}()

	if msg.ID == "" {
		return
	}
	if t.sessions.Resetting() || t.sessions.Restoring() {
		LogDebug("Skipping message %s during session transition", msg.ID)
		return
	}

	content := strings.TrimSpace(ExtractText(msg.Content))
	if content == "" || strings.Contains(content, ratingOptionsMarker) {
		return
	}

	// Always re-load right before saving; a cached copy could be stale
	// after an interleaved reset or restore wrote the store.
	store := t.storage.Load()

	sessionID := t.sessions.Current()
	session, ok := store[sessionID]
	if !ok {
		session = &SessionData{StartedAt: t.now()}
		store[sessionID] = session
	}

	if session.HasMessage(msg.ID) {
		return
	}

	msgType := msg.Type
	if msgType == "" {
		msgType = "string"
	}
	session.Messages = append(session.Messages, StoredMessage{
		ID:        msg.ID,
		Content:   content,
		Sender:    NormalizeSender(msg.Sender),
		Type:      msgType,
		Timestamp: t.now(),
	})
	session.Preview = computePreview(session.Messages)

	if err := t.storage.Save(store); err != nil {
		LogWarn("Failed to persist session %s: %v", sessionID, err)
	}
}

// computePreview derives the history-menu label. Recomputed on every insert
// so the first user message can be superseded once a qualifying long bot
// answer appears.
func computePreview(messages []StoredMessage) string {
	for _, m := range messages {
		if m.Sender == SenderBot && len([]rune(m.Content)) >= PreviewBotMinChars {
			return truncatePreview(m.Content)
		}
	}
	for _, m := range messages {
		if m.Sender == SenderUser {
			return truncatePreview(m.Content)
		}
	}
	return ""
}

func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewMaxChars {
		return text
	}
	return string(runes[:PreviewMaxChars]) + "..."
}
