package export

import (
	"fmt"
	"io"
	"time"

	"github.com/snf/qa-bot-core/qabot"
)

// Transcript is the export view of one persisted session.
type Transcript struct {
	SessionID string                `json:"sessionId" yaml:"session_id"`
	StartedAt time.Time             `json:"startedAt" yaml:"started_at"`
	Preview   string                `json:"preview,omitempty" yaml:"preview,omitempty"`
	Messages  []qabot.StoredMessage `json:"messages" yaml:"messages"`
}

// NewTranscript pairs a session id with its stored data.
func NewTranscript(sessionID string, data *qabot.SessionData) *Transcript {
	return &Transcript{
		SessionID: sessionID,
		StartedAt: data.StartedAt,
		Preview:   data.Preview,
		Messages:  data.Messages,
	}
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(transcript *Transcript, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}
