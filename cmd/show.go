package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/snf/qa-bot-core/qabot"
	"github.com/spf13/cobra"
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	botMessageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true).
			Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a saved conversation",
	Long:  `Display all messages from a saved conversation.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		storage, cleanup, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		store := storage.Load()
		session := findSession(store, sessionID)
		if session == nil {
			return fmt.Errorf("session %s not found (use `qa-bot list` to see saved conversations)", sessionID)
		}

		fmt.Println(sessionHeaderStyle.Render("💬 " + sessionID))
		meta := fmt.Sprintf("Started %s · %d message(s)",
			session.StartedAt.Format(time.RFC3339), len(session.Messages))
		fmt.Println(sessionMetaStyle.Render(meta))

		for _, msg := range session.Messages {
			label := botMessageStyle.Render("bot")
			if msg.Sender == qabot.SenderUser {
				label = userMessageStyle.Render("you")
			}
			if !msg.Timestamp.IsZero() {
				label += " " + timestampStyle.Render(msg.Timestamp.Format("15:04:05"))
			}
			fmt.Println(label)
			fmt.Println(messageContentStyle.Render(msg.Content))
		}
		return nil
	},
}

// findSession resolves a session by full id or by the short form the list
// command prints.
func findSession(store qabot.SessionStore, id string) *qabot.SessionData {
	if session, ok := store[id]; ok {
		return session
	}
	for fullID, session := range store {
		if shortSessionID(fullID) == id {
			return session
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
