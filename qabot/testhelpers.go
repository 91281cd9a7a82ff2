package qabot

import (
	"fmt"
	"time"
)

// fakeEngine is an in-memory ChatEngine for tests. InjectMessage assigns
// sequential ids and dispatches handlers synchronously, matching the
// contract real engines must honor.
type fakeEngine struct {
	handlers   []MessageHandler
	injected   []EngineMessage
	transcript []DisplayMessage
	restarts   int
	openState  bool
	nextID     int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{}
}

func (e *fakeEngine) InjectMessage(content any, sender string) error {
	e.nextID++
	msg := EngineMessage{
		ID:      fmt.Sprintf("msg-%d", e.nextID),
		Content: content,
		Sender:  sender,
		Type:    "string",
	}
	e.injected = append(e.injected, msg)
	e.dispatch(msg)
	return nil
}

func (e *fakeEngine) OnMessage(handler MessageHandler) {
	e.handlers = append(e.handlers, handler)
}

func (e *fakeEngine) ReplaceTranscript(messages []DisplayMessage) error {
	e.transcript = messages
	// Real engines re-emit replaced messages through the same pipe.
	for _, m := range messages {
		e.dispatch(EngineMessage{ID: m.ID, Content: m.Content, Sender: m.Sender, Type: m.Type})
	}
	return nil
}

func (e *fakeEngine) Restart() error {
	e.restarts++
	e.transcript = nil
	return nil
}

func (e *fakeEngine) Open() error {
	e.openState = true
	return nil
}

func (e *fakeEngine) Close() error {
	e.openState = false
	return nil
}

func (e *fakeEngine) dispatch(msg EngineMessage) {
	for _, h := range e.handlers {
		h(msg)
	}
}

// lastInjectedText returns the flattened content of the most recently
// injected message.
func (e *fakeEngine) lastInjectedText() string {
	if len(e.injected) == 0 {
		return ""
	}
	return ExtractText(e.injected[len(e.injected)-1].Content)
}

// CreateTestSessionData builds a session with the given messages.
func CreateTestSessionData(startedAt time.Time, messages ...StoredMessage) *SessionData {
	return &SessionData{
		Messages:  messages,
		StartedAt: startedAt,
		Preview:   computePreview(messages),
	}
}

// CreateTestMessage builds a stored message with sane defaults.
func CreateTestMessage(id string, sender Sender, content string) StoredMessage {
	return StoredMessage{
		ID:        id,
		Content:   content,
		Sender:    sender,
		Type:      "string",
		Timestamp: time.Now(),
	}
}
