package qabot

import (
	"testing"
)

func TestEmitter_EnrichesEvents(t *testing.T) {
	recorder := &eventRecorder{}
	emitter := NewEmitter(recorder.record, func() string { return "qa_bot_session_x" }, "https://host.test", true)

	emitter.Emit(EventChatOpened, map[string]any{"source": "toggle"})

	if len(recorder.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(recorder.events))
	}
	event := recorder.events[0]
	if event.Type != EventChatOpened {
		t.Errorf("Type = %q, want %q", event.Type, EventChatOpened)
	}
	if event.SessionID != "qa_bot_session_x" {
		t.Errorf("SessionID = %q", event.SessionID)
	}
	if event.PageURL != "https://host.test" {
		t.Errorf("PageURL = %q", event.PageURL)
	}
	if !event.Embedded {
		t.Error("Embedded = false, want true")
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
	if event.Fields["source"] != "toggle" {
		t.Errorf("Fields = %v", event.Fields)
	}
}

func TestEmitter_NilSafe(t *testing.T) {
	var emitter *Emitter
	emitter.Emit(EventChatOpened, nil) // must not panic

	noCallback := NewEmitter(nil, func() string { return "s" }, "", false)
	noCallback.Emit(EventChatClosed, nil) // must not panic
}

func TestEmitter_ContainsPanickingCallback(t *testing.T) {
	emitter := NewEmitter(func(AnalyticsEvent) {
		panic("host bug")
	}, func() string { return "s" }, "", false)

	// A panicking host callback must not propagate into the widget.
	emitter.Emit(EventQuestionSent, nil)
}
