package qabot

import "time"

// Analytics event types.
const (
	EventChatOpened       = "chat_opened"
	EventChatClosed       = "chat_closed"
	EventNewChatStarted   = "new_chat_started"
	EventQuestionSent     = "question_sent"
	EventAnswerReceived   = "answer_received"
	EventAnswerError      = "answer_error"
	EventRatingSent       = "rating_sent"
	EventLoginPromptShown = "login_prompt_shown"
)

// AnalyticsEvent is delivered to the host-supplied callback, enriched with
// the ambient session context.
type AnalyticsEvent struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"sessionId"`
	PageURL   string         `json:"pageUrl,omitempty"`
	Embedded  bool           `json:"isEmbedded"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// AnalyticsFunc is the host page's event sink.
type AnalyticsFunc func(event AnalyticsEvent)

// Emitter enriches and forwards analytics events. A nil callback makes it a
// no-op; a panicking callback is contained so host bugs cannot break the
// chat.
type Emitter struct {
	fn        AnalyticsFunc
	sessionID func() string
	pageURL   string
	embedded  bool
}

func NewEmitter(fn AnalyticsFunc, sessionID func() string, pageURL string, embedded bool) *Emitter {
	return &Emitter{
		fn:        fn,
		sessionID: sessionID,
		pageURL:   pageURL,
		embedded:  embedded,
	}
}

// Emit sends one event. Safe to call on a nil emitter.
func (e *Emitter) Emit(eventType string, fields map[string]any) {
	if e == nil || e.fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			LogWarn("Analytics callback panicked on %s: %v", eventType, r)
		}
	}()

	e.fn(AnalyticsEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		SessionID: e.sessionID(),
		PageURL:   e.pageURL,
		Embedded:  e.embedded,
		Fields:    fields,
	})
}
