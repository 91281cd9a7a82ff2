package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/snf/qa-bot-core/qabot"
)

var (
	botLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("135"))

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	messageBodyStyle = lipgloss.NewStyle().
				Padding(0, 2)

	transitionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// consoleEngine is a terminal ChatEngine: injected messages are printed to
// the writer and dispatched synchronously to subscribed handlers, the same
// contract the browser engine honors.
type consoleEngine struct {
	out      io.Writer
	handlers []qabot.MessageHandler
}

func newConsoleEngine(out io.Writer) *consoleEngine {
	return &consoleEngine{out: out}
}

func (e *consoleEngine) InjectMessage(content any, sender string) error {
	msg := qabot.EngineMessage{
		ID:      uuid.NewString(),
		Content: content,
		Sender:  sender,
		Type:    "string",
	}
	e.render(qabot.NormalizeSender(sender), qabot.ExtractText(content))
	for _, h := range e.handlers {
		h(msg)
	}
	return nil
}

func (e *consoleEngine) OnMessage(handler qabot.MessageHandler) {
	e.handlers = append(e.handlers, handler)
}

func (e *consoleEngine) ReplaceTranscript(messages []qabot.DisplayMessage) error {
	_, _ = fmt.Fprintln(e.out, transitionStyle.Render("── restored conversation ──"))
	for _, m := range messages {
		e.render(qabot.Sender(m.Sender), m.Content)
		for _, h := range e.handlers {
			h(qabot.EngineMessage{ID: m.ID, Content: m.Content, Sender: m.Sender, Type: m.Type})
		}
	}
	return nil
}

func (e *consoleEngine) Restart() error {
	_, _ = fmt.Fprintln(e.out, transitionStyle.Render("── new conversation ──"))
	return nil
}

func (e *consoleEngine) Open() error  { return nil }
func (e *consoleEngine) Close() error { return nil }

func (e *consoleEngine) render(sender qabot.Sender, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	label := botLabelStyle.Render("bot")
	if sender == qabot.SenderUser {
		label = userLabelStyle.Render("you")
	}
	_, _ = fmt.Fprintf(e.out, "%s\n%s\n", label, messageBodyStyle.Render(text))
}
