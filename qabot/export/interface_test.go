package export

import (
	"testing"
	"time"

	"github.com/snf/qa-bot-core/qabot"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format    string
		wantExt   string
		wantErr   bool
	}{
		{format: "jsonl", wantExt: "jsonl"},
		{format: "md", wantExt: "md"},
		{format: "markdown", wantExt: "md"},
		{format: "yaml", wantExt: "yaml"},
		{format: "json", wantExt: "json"},
		{format: "xml", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewExporter(%q) expected error, got nil", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExporter(%q) error = %v", tt.format, err)
			}
			if exporter.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", exporter.Extension(), tt.wantExt)
			}
		})
	}
}

func TestNewTranscript(t *testing.T) {
	started := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	data := &qabot.SessionData{
		Messages: []qabot.StoredMessage{
			{ID: "m1", Content: "hello", Sender: qabot.SenderUser, Type: "string"},
		},
		StartedAt: started,
		Preview:   "hello",
	}

	transcript := NewTranscript("qa_bot_session_1", data)
	if transcript.SessionID != "qa_bot_session_1" {
		t.Errorf("SessionID = %q", transcript.SessionID)
	}
	if !transcript.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v", transcript.StartedAt)
	}
	if transcript.Preview != "hello" {
		t.Errorf("Preview = %q", transcript.Preview)
	}
	if len(transcript.Messages) != 1 {
		t.Errorf("Messages = %d, want 1", len(transcript.Messages))
	}
}
