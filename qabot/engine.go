package qabot

// EngineMessage is the payload the chat engine emits just before it renders
// a message. Content is either a plain string or a renderable tree (see
// ExtractText); the sender tag is whatever casing the engine uses.
type EngineMessage struct {
	ID      string
	Content any
	Sender  string
	Type    string
}

// DisplayMessage is the shape the engine accepts when a transcript is
// replaced wholesale during history restore.
type DisplayMessage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// MessageHandler observes messages as the engine is about to show them.
type MessageHandler func(msg EngineMessage)

// ChatEngine is the narrow interface the widget drives. The real chat UI
// library owns rendering, its own message list and the conversational flow
// graph; the widget only injects messages, subscribes to emissions and
// replaces transcripts.
//
// InjectMessage must invoke registered handlers synchronously before it
// returns, so that a message is tracked before the next one is injected.
type ChatEngine interface {
	InjectMessage(content any, sender string) error
	OnMessage(handler MessageHandler)
	ReplaceTranscript(messages []DisplayMessage) error
	Restart() error
	Open() error
	Close() error
}
