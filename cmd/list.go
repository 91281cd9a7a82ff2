package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/snf/qa-bot-core/qabot"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations",
	Long:  `List all conversations saved in the local session store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, cleanup, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		displaySessions(storage.Summaries())
		return nil
	},
}

func displaySessions(sessions []qabot.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("📋 No conversations found"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Found %d conversation(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Preview")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Started")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, session := range sessions {
		preview := session.Preview
		if preview == "" {
			preview = "Untitled"
		}
		previewStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
		preview = previewStyle.Render(preview)

		count := countStyle.Render(strconv.Itoa(session.MessageCount))
		started := dateStyle.Render(formatStartedAt(session.StartedAt))
		id := idStyle.Render(shortSessionID(session.SessionID))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, preview, count, started)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("💡 Tip: Use the full ID (e.g., ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].SessionID) +
		idStyle.Render(") with `qa-bot show <id>`"))
}

// formatStartedAt renders a start time relative to now, the way chat apps
// label conversations.
func formatStartedAt(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

// shortSessionID trims the fixed prefix and truncates the UUID for display.
func shortSessionID(id string) string {
	short := strings.TrimPrefix(id, "qa_bot_session_")
	if len(short) > 8 {
		short = short[:8]
	}
	return short
}

func init() {
	rootCmd.AddCommand(listCmd)
}
